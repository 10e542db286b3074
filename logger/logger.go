package logger

import (
	"fmt"
	"sync"

	"github.com/philipp01105/hlog/core"
)

// Logger is a named node of a Registry hierarchy
type Logger struct {
	name     string
	registry *Registry
	root     bool

	mu        sync.RWMutex
	level     core.Level
	propagate bool
	parent    *Logger
	pipelines []*Pipeline
}

func newLogger(r *Registry, name string, parent *Logger) *Logger {
	return &Logger{
		name:      name,
		registry:  r,
		level:     core.NotSet,
		propagate: true,
		parent:    parent,
	}
}

// Name returns the logger's full dotted name
func (l *Logger) Name() string {
	return l.name
}

// Parent returns the parent logger, or nil for the root
func (l *Logger) Parent() *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.parent
}

// IsRoot reports whether l is its registry's root
func (l *Logger) IsRoot() bool {
	return l.root
}

// Level returns the logger's own level, possibly NotSet
func (l *Logger) Level() core.Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

// SetLevel sets the logger's own level. NotSet makes it inherit.
func (l *Logger) SetLevel(level core.Level) error {
	if !level.Settable() {
		return &core.LevelError{Level: level}
	}
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
	return nil
}

// Propagate reports whether messages continue to the parent's pipelines
func (l *Logger) Propagate() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.propagate
}

// SetPropagate enables or disables propagation to the parent
func (l *Logger) SetPropagate(propagate bool) {
	l.mu.Lock()
	l.propagate = propagate
	l.mu.Unlock()
}

// AddPipeline appends p to the logger's pipelines
func (l *Logger) AddPipeline(p *Pipeline) error {
	if p == nil || p.Dispatcher == nil {
		return fmt.Errorf("logger %q: %w", l.name, core.ErrNilDispatcher)
	}
	l.mu.Lock()
	// full slice expression: readers holding the old slice keep a stable view
	l.pipelines = append(l.pipelines[:len(l.pipelines):len(l.pipelines)], p)
	l.mu.Unlock()
	return nil
}

// Pipelines returns the logger's own pipelines in declaration order
func (l *Logger) Pipelines() []*Pipeline {
	return append([]*Pipeline(nil), l.snapshotPipelines()...)
}

func (l *Logger) snapshotPipelines() []*Pipeline {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pipelines
}

// EffectiveLevel returns the threshold the logger actually uses
func (l *Logger) EffectiveLevel() core.Level {
	level, err := l.resolveLevel()
	if err != nil {
		l.registry.report(err)
	}
	return level
}

// IsEnabledFor reports whether a message at level would be processed
func (l *Logger) IsEnabledFor(level core.Level) bool {
	if !level.Valid() {
		return false
	}
	threshold, err := l.resolveLevel()
	return err == nil && level >= threshold
}

// resolveLevel walks up from l to the first explicit level
func (l *Logger) resolveLevel() (core.Level, error) {
	limit := l.registry.size()
	node := l
	for steps := 0; ; steps++ {
		if steps > limit {
			return core.InfoLevel, cycleError(l.name)
		}
		node.mu.RLock()
		level, parent := node.level, node.parent
		node.mu.RUnlock()

		if level != core.NotSet {
			return level, nil
		}
		if node.root {
			return l.registry.defaultLevel, nil
		}
		if parent == nil {
			return core.InfoLevel, nil
		}
		node = parent
	}
}

// EffectiveDispatchEntries returns every pipeline a message emitted on l
// reaches, deepest first
func (l *Logger) EffectiveDispatchEntries() []DispatchEntry {
	entries, err := l.collect()
	if err != nil {
		l.registry.report(err)
		return nil
	}
	return entries
}

// collect gathers pipelines from l upwards while propagation holds
func (l *Logger) collect() ([]DispatchEntry, error) {
	limit := l.registry.size()
	var entries []DispatchEntry
	node := l
	for steps := 0; node != nil; steps++ {
		if steps > limit {
			return nil, cycleError(l.name)
		}
		node.mu.RLock()
		pipelines, level, propagate, parent := node.pipelines, node.level, node.propagate, node.parent
		node.mu.RUnlock()

		for _, p := range pipelines {
			entries = append(entries, DispatchEntry{
				Pipeline:       p,
				OwnerName:      node.name,
				OwnerLevel:     level,
				OwnerPropagate: propagate,
			})
		}
		if !propagate || node.root {
			break
		}
		node = parent
	}
	return entries, nil
}

func cycleError(name string) error {
	return fmt.Errorf("resolving logger %q: %w", name, core.ErrCycleDetected)
}

// NodeConfig is a point-in-time description of a logger
type NodeConfig struct {
	Name           string
	Parent         string
	Level          core.Level
	EffectiveLevel core.Level
	Propagate      bool
	Pipelines      []PipelineConfig
}

// PipelineConfig describes one pipeline by the types of its stages
type PipelineConfig struct {
	Transformers []string
	Presenter    string
	Dispatcher   string
	Config       core.Config
}

// Config returns a snapshot of the logger's configuration
func (l *Logger) Config() NodeConfig {
	l.mu.RLock()
	cfg := NodeConfig{
		Name:      l.name,
		Level:     l.level,
		Propagate: l.propagate,
	}
	if l.parent != nil {
		cfg.Parent = l.parent.name
	}
	pipelines := l.pipelines
	l.mu.RUnlock()

	cfg.EffectiveLevel = l.EffectiveLevel()
	for _, p := range pipelines {
		cfg.Pipelines = append(cfg.Pipelines, p.describe())
	}
	return cfg
}
