package dispatcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/philipp01105/hlog/core"
)

// ErrClosed is returned when dispatching to a closed dispatcher
var ErrClosed = errors.New("dispatcher closed")

// FileConfig holds configuration for the file dispatcher
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Perm is the mode used when creating the file (default: 0644)
	Perm os.FileMode
}

// File appends each message as one line to a file
type File struct {
	mu       sync.Mutex
	filename string
	file     *os.File
	line     []byte
}

// NewFile opens (or creates) the log file for appending
func NewFile(cfg FileConfig) (*File, error) {
	if cfg.Filename == "" {
		return nil, fmt.Errorf("filename is required")
	}
	if cfg.Perm == 0 {
		cfg.Perm = 0644
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Filename), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, cfg.Perm)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &File{
		filename: cfg.Filename,
		file:     file,
		line:     make([]byte, 0, 256),
	}, nil
}

// Dispatch implements Dispatcher
func (d *File) Dispatch(msg string, _ *core.Record, _ core.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return ErrClosed
	}
	d.line = append(d.line[:0], msg...)
	d.line = append(d.line, '\n')
	_, err := d.file.Write(d.line)
	return err
}

// Filename returns the path being written
func (d *File) Filename() string {
	return d.filename
}

// Close syncs and closes the file
func (d *File) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	f := d.file
	d.file = nil
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
