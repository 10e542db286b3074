// Package logger is the public API of hlog. Most users only need to
// import this package plus the stage packages they attach.
//
// Loggers are named nodes in a dot-separated hierarchy owned by a
// Registry. Requesting "app.db.pool" creates "app" and "app.db" on the
// way, each with no level of its own (NotSet) and propagation enabled:
//
//	reg := logger.NewRegistryBuilder().
//	    WithDefaultLevel(logger.InfoLevel).
//	    Build()
//	log := reg.MustGet("app.db")
//	log.Info("connected to %s", host)
//
// Every logger may carry Pipelines. A pipeline is an ordered list of
// transformers, one presenter and one dispatcher, plus an opaque Config
// handed to the presenter and dispatcher. A message emitted on a logger
// runs through the logger's own pipelines, then through its parent's,
// and so on up to the root, stopping after the first logger whose
// propagation is disabled.
//
// The threshold used by a logger is its own level, or the nearest
// ancestor's when it has none, or the registry default at the root.
// Messages below the threshold cost only the ancestor walk and a
// comparison; no record is built.
//
// Failures inside a pipeline stage (an error or a panic) are confined to
// that pipeline. They are written as one line to the registry's error
// writer and the next pipeline runs normally. Log returns an error only
// when the caller passes an invalid level (a *core.LevelError) or the
// logger's ancestor chain loops (core.ErrCycleDetected); the leveled
// helpers such as Info discard it.
package logger
