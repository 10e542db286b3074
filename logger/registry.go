package logger

import (
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
)

const (
	// RootName is the reserved name of the root logger
	RootName = "_root"
	// ReservedPrefix marks names reserved for internal use
	ReservedPrefix = "_"
)

// Registry owns a logger hierarchy
type Registry struct {
	mu      sync.RWMutex
	loggers map[string]*Logger
	root    *Logger
	// count is the number of loggers ever created. It never decreases,
	// so chains held by loggers detached by Reset stay within it.
	count atomic.Int64

	defaultLevel core.Level
	coarseClock  bool

	errMu     sync.Mutex
	errWriter io.Writer
}

// RegistryBuilder provides a fluent API for building Registry instances
type RegistryBuilder struct {
	defaultLevel core.Level
	errWriter    io.Writer
	coarseClock  bool
}

// NewRegistryBuilder creates a new registry builder
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		defaultLevel: core.WarnLevel,
		errWriter:    os.Stderr,
	}
}

// WithDefaultLevel sets the level the root logger starts with and the
// level used when the root's own level is forced to NotSet
func (b *RegistryBuilder) WithDefaultLevel(level core.Level) *RegistryBuilder {
	if level.Valid() || level == core.NoneLevel {
		b.defaultLevel = level
	}
	return b
}

// WithErrorWriter sets where pipeline failures are reported
func (b *RegistryBuilder) WithErrorWriter(w io.Writer) *RegistryBuilder {
	if w != nil {
		b.errWriter = w
	}
	return b
}

// WithCoarseClock stamps records from the cached coarse clock
func (b *RegistryBuilder) WithCoarseClock(enabled bool) *RegistryBuilder {
	b.coarseClock = enabled
	return b
}

// Build creates the Registry instance
func (b *RegistryBuilder) Build() *Registry {
	if b.coarseClock {
		core.StartCoarseClock()
	}
	r := &Registry{
		defaultLevel: b.defaultLevel,
		coarseClock:  b.coarseClock,
		errWriter:    b.errWriter,
	}
	r.reset()
	return r
}

// NewRegistry creates a registry with default settings
func NewRegistry() *Registry {
	return NewRegistryBuilder().Build()
}

func (r *Registry) reset() {
	r.root = newLogger(r, RootName, nil)
	r.root.root = true
	r.root.level = r.defaultLevel
	r.loggers = map[string]*Logger{RootName: r.root}
	r.count.Add(1)
}

// Reset drops every logger and recreates the root. Loggers obtained
// before Reset are detached from the new hierarchy.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reset()
}

// Root returns the root logger
func (r *Registry) Root() *Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.root
}

// DefaultLevel returns the level used for a root logger without a level
func (r *Registry) DefaultLevel() core.Level {
	return r.defaultLevel
}

// GetOrCreate returns the logger called name, creating it and any
// missing ancestors. A cached logger is returned unchanged.
func (r *Registry) GetOrCreate(name string) (*Logger, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	r.mu.RLock()
	l, ok := r.loggers[name]
	r.mu.RUnlock()
	if ok {
		return l, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getOrCreateLocked(name), nil
}

// MustGet is like GetOrCreate but panics on an invalid name
func (r *Registry) MustGet(name string) *Logger {
	l, err := r.GetOrCreate(name)
	if err != nil {
		panic(err)
	}
	return l
}

func (r *Registry) getOrCreateLocked(name string) *Logger {
	if l, ok := r.loggers[name]; ok {
		return l
	}
	parent := r.root
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		parent = r.getOrCreateLocked(name[:i])
	}
	l := newLogger(r, name, parent)
	r.loggers[name] = l
	r.count.Add(1)
	return l
}

func validateName(name string) error {
	if name == "" {
		return &core.NameError{Name: name, Reason: "empty name"}
	}
	if name == RootName {
		return nil
	}
	if strings.HasPrefix(name, ReservedPrefix) {
		return &core.NameError{Name: name, Reason: "reserved prefix " + ReservedPrefix}
	}
	for _, seg := range strings.Split(name, ".") {
		if seg == "" {
			return &core.NameError{Name: name, Reason: "empty segment"}
		}
	}
	return nil
}

// Loggers returns the names of all cached loggers, sorted
func (r *Registry) Loggers() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.loggers))
	for name := range r.loggers {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Close closes every dispatcher attached to the hierarchy that
// implements io.Closer, each at most once
func (r *Registry) Close() error {
	r.mu.RLock()
	loggers := make([]*Logger, 0, len(r.loggers))
	for _, l := range r.loggers {
		loggers = append(loggers, l)
	}
	r.mu.RUnlock()

	seen := make(map[io.Closer]struct{})
	var err error
	for _, l := range loggers {
		for _, p := range l.snapshotPipelines() {
			c, ok := p.Dispatcher.(io.Closer)
			if !ok {
				continue
			}
			if reflect.TypeOf(c).Comparable() {
				if _, dup := seen[c]; dup {
					continue
				}
				seen[c] = struct{}{}
			}
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}

// size bounds ancestor walks: a walk longer than the number of loggers
// ever created must have revisited one
func (r *Registry) size() int {
	return int(r.count.Load())
}

func (r *Registry) now() time.Time {
	if r.coarseClock {
		return core.CoarseNow()
	}
	return time.Now()
}

// report writes one diagnostics line
func (r *Registry) report(err error) {
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	if _, ok := err.(*core.StageError); !ok {
		msg = "Logging system error: " + msg
	}
	r.errMu.Lock()
	defer r.errMu.Unlock()
	_, _ = io.WriteString(r.errWriter, msg+"\n")
}

func (r *Registry) reportStage(stage core.Stage, owner string, err error) {
	r.report(&core.StageError{Stage: stage, Logger: owner, Err: err})
}
