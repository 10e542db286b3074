package core

import (
	"strconv"
	"strings"
)

// Level represents the severity level of a log record
type Level int

const (
	// NotSet means "inherit the level from the parent logger"
	NotSet Level = 0
	// DebugLevel for detailed debugging information
	DebugLevel Level = 10
	// InfoLevel for general informational messages
	InfoLevel Level = 20
	// WarnLevel for warning messages
	WarnLevel Level = 30
	// ErrorLevel for error messages
	ErrorLevel Level = 40
	// CriticalLevel for failures the application may not survive
	CriticalLevel Level = 50
	// NoneLevel silences a logger entirely; it cannot be emitted
	NoneLevel Level = 100
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case NotSet:
		return "NOTSET"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case CriticalLevel:
		return "CRITICAL"
	case NoneLevel:
		return "NONE"
	default:
		return "LEVEL(" + strconv.Itoa(int(l)) + ")"
	}
}

// Valid reports whether l may be used to emit a message.
// Values between the named levels are allowed as custom severities.
func (l Level) Valid() bool {
	return l >= DebugLevel && l < NoneLevel
}

// Settable reports whether l may be assigned as a logger threshold.
func (l Level) Settable() bool {
	return l == NotSet || l == NoneLevel || l.Valid()
}

// ParseLevel converts a level name to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NOTSET":
		return NotSet, nil
	case "DEBUG":
		return DebugLevel, nil
	case "INFO":
		return InfoLevel, nil
	case "WARN", "WARNING":
		return WarnLevel, nil
	case "ERROR":
		return ErrorLevel, nil
	case "CRITICAL", "FATAL":
		return CriticalLevel, nil
	case "NONE", "OFF":
		return NoneLevel, nil
	default:
		return NotSet, &LevelError{Input: s}
	}
}

// UnmarshalText lets levels be decoded from configuration files.
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText returns the level name.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
