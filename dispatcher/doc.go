// Package dispatcher provides the Dispatcher interface and its built-in
// implementations for delivering rendered records to outputs.
//
// A Dispatcher is the last stage of a pipeline. It receives the string
// produced by the presenter, the record it was rendered from, and the
// pipeline's static configuration. Errors returned (or panics raised)
// by a dispatcher are caught by the logger, reported on its diagnostics
// writer and never reach the code that emitted the message.
//
// Built-in dispatchers:
//
//   - Writer writes one line per record to any io.Writer (Stdout and
//     Stderr are provided).
//   - File appends to a file, creating parent directories as needed.
//   - Multi fans a record out to several dispatchers and aggregates
//     their errors.
//   - Async wraps any dispatcher with a bounded queue drained by a
//     background goroutine. When the queue is full a per-level
//     OverflowPolicy applies: DropNewest (default for Debug/Info/Warn),
//     DropOldest, or Block with a timeout (default for Error and
//     Critical). Dropped, blocked and processed counts are tracked in
//     Stats.
//   - Zap forwards records into a go.uber.org/zap logger.
//   - Discard drops everything.
//
// Dispatchers holding resources also implement io.Closer.
package dispatcher
