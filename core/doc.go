// Package core defines the shared types used across hlog.
//
// It provides the Level type for severity filtering (including the
// NotSet "inherit from parent" sentinel), the Record type that
// represents a single log event while it travels through a pipeline,
// and the error types returned to callers or recorded on records.
//
// A Record is built once per log call. Every pipeline entry that
// receives it works on its own Clone, so a transformer attached to one
// logger can never mutate what another logger's pipeline sees.
//
// The package also hosts an optional coarse clock, a background ticker
// that caches time.Now so that hot logging paths can stamp records
// without a syscall.
package core
