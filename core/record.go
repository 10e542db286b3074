package core

import (
	"path/filepath"
	"runtime"
	"time"
)

// Context carries structured key/value data attached to a record
type Context map[string]interface{}

// Clone returns a shallow copy of the context
func (c Context) Clone() Context {
	if c == nil {
		return nil
	}
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// Config is the opaque per-pipeline configuration handed to presenters
// and dispatchers
type Config map[string]interface{}

// String returns the value at key as a string, or def when absent or not a string
func (c Config) String(key, def string) string {
	if v, ok := c[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the value at key as a bool, or def when absent or not a bool
func (c Config) Bool(key string, def bool) bool {
	if v, ok := c[key].(bool); ok {
		return v
	}
	return def
}

// Record represents one log event.
//
// The fields above Message are set when the record is built and are not
// changed afterwards, except LoggerName which follows the owner of the
// pipeline currently processing the record. The remaining fields are
// filled in while a pipeline runs.
type Record struct {
	Time             time.Time
	Level            Level
	LevelName        string
	LoggerName       string
	SourceLoggerName string
	MessageFmt       string
	Args             []interface{}
	Context          Context
	Caller           CallerInfo

	Message          string
	PresentedMessage string
	TransformerError string
	PresenterError   string
}

// NewRecord builds a record stamped with t
func NewRecord(t time.Time, level Level, loggerName, format string, args []interface{}, ctx Context) *Record {
	return &Record{
		Time:             t,
		Level:            level,
		LevelName:        level.String(),
		LoggerName:       loggerName,
		SourceLoggerName: loggerName,
		MessageFmt:       format,
		Args:             args,
		Context:          ctx,
	}
}

// Clone returns a copy that shares nothing mutable with r
func (r *Record) Clone() *Record {
	c := *r
	if r.Args != nil {
		c.Args = make([]interface{}, len(r.Args))
		copy(c.Args, r.Args)
	}
	c.Context = r.Context.Clone()
	return &c
}

// CallerInfo contains information about the caller
type CallerInfo struct {
	File      string
	ShortFile string
	Line      int
	Function  string
	Defined   bool
}

// GetCaller retrieves caller information
func GetCaller(skip int) CallerInfo {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallerInfo{}
	}

	fn := runtime.FuncForPC(pc)
	var funcName string
	if fn != nil {
		funcName = fn.Name()
	}

	return CallerInfo{
		File:      file,
		ShortFile: filepath.Base(file),
		Line:      line,
		Function:  funcName,
		Defined:   true,
	}
}
