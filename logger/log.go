package logger

import (
	"fmt"

	"github.com/philipp01105/hlog/core"
)

// callerSkip is the number of frames between buildRecord's GetCaller
// call and the user's call site: buildRecord, log, public method
const callerSkip = 3

// Log emits a message at level.
//
// Arguments are read as follows: a leading Context (or
// map[string]interface{}) becomes the record context; the next argument
// is the printf format when it is a string, or is converted with
// fmt.Sprint otherwise; everything after it is substituted into the
// format by the presenter.
//
//	log.Log(logger.InfoLevel, "User %s logged in", name)
//	log.Log(logger.WarnLevel, logger.Context{"attempt": 3}, "retrying")
//
// Log only fails for an invalid level or a corrupted hierarchy; stage
// failures are reported on the registry's error writer.
func (l *Logger) Log(level core.Level, args ...interface{}) error {
	return l.log(level, args)
}

// Debug logs a debug message
func (l *Logger) Debug(args ...interface{}) {
	_ = l.log(core.DebugLevel, args)
}

// Info logs an info message
func (l *Logger) Info(args ...interface{}) {
	_ = l.log(core.InfoLevel, args)
}

// Warn logs a warning message
func (l *Logger) Warn(args ...interface{}) {
	_ = l.log(core.WarnLevel, args)
}

// Error logs an error message
func (l *Logger) Error(args ...interface{}) {
	_ = l.log(core.ErrorLevel, args)
}

// Critical logs a critical message
func (l *Logger) Critical(args ...interface{}) {
	_ = l.log(core.CriticalLevel, args)
}

func (l *Logger) log(level core.Level, args []interface{}) error {
	if !level.Valid() {
		return &core.LevelError{Level: level}
	}

	// Level check before any allocation
	threshold, err := l.resolveLevel()
	if err != nil {
		return err
	}
	if level < threshold {
		return nil
	}

	rec := l.buildRecord(level, args)
	return l.emit(rec)
}

// emit delivers an already built record through the effective pipelines
func (l *Logger) emit(rec *core.Record) error {
	entries, err := l.collect()
	if err != nil {
		return err
	}
	l.registry.process(rec, entries)
	return nil
}

// buildRecord must only be called from log; see callerSkip
func (l *Logger) buildRecord(level core.Level, args []interface{}) *core.Record {
	format, fmtArgs, ctx := parseArgs(args)
	rec := core.NewRecord(l.registry.now(), level, l.name, format, fmtArgs, ctx)
	rec.Caller = core.GetCaller(callerSkip)
	return rec
}

// parseArgs splits call-site arguments into format, args and context
func parseArgs(args []interface{}) (string, []interface{}, core.Context) {
	if len(args) == 0 {
		return "", nil, nil
	}
	switch first := args[0].(type) {
	case core.Context:
		format, rest := parseMessage(args[1:])
		return format, rest, first
	case map[string]interface{}:
		format, rest := parseMessage(args[1:])
		return format, rest, core.Context(first)
	default:
		format, rest := parseMessage(args)
		return format, rest, nil
	}
}

func parseMessage(args []interface{}) (string, []interface{}) {
	if len(args) == 0 {
		return "", nil
	}
	var rest []interface{}
	if len(args) > 1 {
		rest = args[1:]
	}
	if s, ok := args[0].(string); ok {
		return s, rest
	}
	return fmt.Sprint(args[0]), rest
}
