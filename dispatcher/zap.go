package dispatcher

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/hlog/core"
)

// Zap forwards records into a zap logger. The rendered message becomes
// the zap message; logger names, caller and context become fields.
type Zap struct {
	logger *zap.Logger
}

// NewZap creates a dispatcher writing to l
func NewZap(l *zap.Logger) *Zap {
	return &Zap{logger: l}
}

// ZapLevel maps a level onto the nearest zap level. Critical maps to
// Error: zap's DPanic and above change control flow.
func ZapLevel(l core.Level) zapcore.Level {
	switch {
	case l >= core.ErrorLevel:
		return zapcore.ErrorLevel
	case l >= core.WarnLevel:
		return zapcore.WarnLevel
	case l >= core.InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Dispatch implements Dispatcher. The pipeline config key "message"
// set to "raw" sends the substituted message instead of the rendered one.
func (d *Zap) Dispatch(msg string, rec *core.Record, cfg core.Config) error {
	ce := d.logger.Check(ZapLevel(rec.Level), msg)
	if ce == nil {
		return nil
	}
	if cfg.String("message", "") == "raw" && rec.Message != "" {
		ce.Message = rec.Message
	}
	ce.Time = rec.Time
	ce.LoggerName = rec.LoggerName
	if rec.Caller.Defined {
		ce.Caller = zapcore.NewEntryCaller(0, rec.Caller.File, rec.Caller.Line, true)
		ce.Caller.Function = rec.Caller.Function
	}

	fields := make([]zap.Field, 0, len(rec.Context)+2)
	fields = append(fields, zap.String("level_name", rec.LevelName))
	if rec.SourceLoggerName != rec.LoggerName {
		fields = append(fields, zap.String("source_logger", rec.SourceLoggerName))
	}
	keys := make([]string, 0, len(rec.Context))
	for k := range rec.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, rec.Context[k]))
	}
	ce.Write(fields...)
	return nil
}

// Close flushes the zap logger
func (d *Zap) Close() error {
	return d.logger.Sync()
}
