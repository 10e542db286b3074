package logger

import (
	"github.com/philipp01105/hlog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	NotSet        = core.NotSet
	DebugLevel    = core.DebugLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
	NoneLevel     = core.NoneLevel
)

// Context Re-export for callers passing structured data
type Context = core.Context

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	return core.ParseLevel(s)
}
