package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned for empty or reserved logger names
	ErrInvalidName = errors.New("invalid logger name")
	// ErrInvalidLevel is returned when a level cannot be used for the requested operation
	ErrInvalidLevel = errors.New("invalid level")
	// ErrCycleDetected is returned when an ancestor walk revisits a logger
	ErrCycleDetected = errors.New("logger hierarchy cycle detected")
	// ErrNilDispatcher is returned when a pipeline has no dispatcher
	ErrNilDispatcher = errors.New("pipeline has no dispatcher")
)

// NameError describes a rejected logger name
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid logger name %q: %s", e.Name, e.Reason)
}

func (e *NameError) Unwrap() error { return ErrInvalidName }

// LevelError describes a rejected level value or level name
type LevelError struct {
	Level Level
	// Input is set when the level came from a string
	Input string
}

func (e *LevelError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("invalid level %q", e.Input)
	}
	return fmt.Sprintf("invalid level %d", int(e.Level))
}

func (e *LevelError) Unwrap() error { return ErrInvalidLevel }

// Stage names a pipeline stage in diagnostics
type Stage string

const (
	StageTransformer Stage = "Transformer"
	StagePresenter   Stage = "Presenter"
	StageDispatcher  Stage = "Dispatcher"
)

// StageError wraps a failure raised by a user supplied pipeline stage.
// It never escapes a log call; it is reported on the diagnostics writer.
type StageError struct {
	Stage  Stage
	Logger string
	Err    error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("Logging system error: %s in logger '%s': %v", e.Stage, e.Logger, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FormatError reports a printf argument/format mismatch
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return "[FORMAT ERROR: " + e.Reason + "]"
}

// PanicError carries a value recovered from a panicking stage
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return "panic: " + err.Error()
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
