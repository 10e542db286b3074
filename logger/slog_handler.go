package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"

	"github.com/philipp01105/hlog/core"
)

// SlogHandler implements slog.Handler on top of a Logger, so code
// written against log/slog emits through the logger's hierarchy.
type SlogHandler struct {
	logger *Logger
	attrs  core.Context
	group  string
}

// NewSlogHandler creates a slog.Handler emitting on l
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the logger processes records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.IsEnabledFor(slogLevelToCore(level))
}

// Handle converts a slog.Record into a record and runs the logger's
// pipelines. The slog message is used verbatim as the format.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	level := slogLevelToCore(record.Level)
	if !s.logger.IsEnabledFor(level) {
		return nil
	}

	var ctx core.Context
	if len(s.attrs) > 0 || record.NumAttrs() > 0 {
		ctx = make(core.Context, len(s.attrs)+record.NumAttrs())
		for k, v := range s.attrs {
			ctx[k] = v
		}
		record.Attrs(func(a slog.Attr) bool {
			addAttr(ctx, s.group, a)
			return true
		})
	}

	t := record.Time
	if t.IsZero() {
		t = s.logger.registry.now()
	}
	rec := core.NewRecord(t, level, s.logger.name, record.Message, nil, ctx)
	if record.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{record.PC}).Next()
		rec.Caller = core.CallerInfo{
			File:      frame.File,
			ShortFile: filepath.Base(frame.File),
			Line:      frame.Line,
			Function:  frame.Function,
			Defined:   frame.File != "",
		}
	}
	return s.logger.emit(rec)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make(core.Context, len(s.attrs)+len(attrs))
	for k, v := range s.attrs {
		newAttrs[k] = v
	}
	for _, a := range attrs {
		addAttr(newAttrs, s.group, a)
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  newAttrs,
		group:  s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		logger: s.logger,
		attrs:  s.attrs,
		group:  newGroup,
	}
}

// slogLevelToCore converts a slog.Level to a core.Level.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// addAttr stores a resolved slog.Attr under its group-prefixed key,
// flattening nested groups.
func addAttr(ctx core.Context, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addAttr(ctx, key, ga)
		}
		return
	}
	ctx[key] = a.Value.Any()
}
