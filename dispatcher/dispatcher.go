package dispatcher

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/hlog/core"
)

// Dispatcher delivers a rendered message to an external sink
type Dispatcher interface {
	Dispatch(msg string, rec *core.Record, cfg core.Config) error
}

// Func adapts a plain function to the Dispatcher interface
type Func func(msg string, rec *core.Record, cfg core.Config) error

// Dispatch calls f(msg, rec, cfg)
func (f Func) Dispatch(msg string, rec *core.Record, cfg core.Config) error {
	return f(msg, rec, cfg)
}

// Discard drops every message
var Discard Dispatcher = Func(func(string, *core.Record, core.Config) error { return nil })

// Writer writes each message as one line to an io.Writer
type Writer struct {
	mu sync.Mutex
	w  io.Writer
	// line is reused across writes; guarded by mu
	line []byte
}

// NewWriter creates a dispatcher writing to w (default: os.Stdout)
func NewWriter(w io.Writer) *Writer {
	if w == nil {
		w = os.Stdout
	}
	return &Writer{w: w, line: make([]byte, 0, 256)}
}

// Stdout returns a dispatcher writing to os.Stdout
func Stdout() *Writer { return NewWriter(os.Stdout) }

// Stderr returns a dispatcher writing to os.Stderr
func Stderr() *Writer { return NewWriter(os.Stderr) }

// Dispatch implements Dispatcher
func (d *Writer) Dispatch(msg string, _ *core.Record, _ core.Config) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.line = append(d.line[:0], msg...)
	d.line = append(d.line, '\n')
	_, err := d.w.Write(d.line)
	if cap(d.line) > 64*1024 {
		d.line = make([]byte, 0, 256)
	}
	return err
}
