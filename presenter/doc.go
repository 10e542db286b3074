// Package presenter defines how records are rendered into strings.
//
// A Presenter is the middle stage of a pipeline. It performs the
// printf-style substitution of the record's Args into its MessageFmt
// (see FormatMessage) and lays the result out for a dispatcher.
//
// A format/argument mismatch is not a presenter failure: the message is
// replaced by a bracketed "[FORMAT ERROR: ...]" placeholder and
// rendering continues. Only an error returned by (or a panic inside) a
// presenter counts as a stage failure, which the logger replaces with a
// fallback line.
//
// Built-in presenters (Message, Text and JSON) render into pooled
// bytes.Buffers and use Append-style functions (time.AppendFormat,
// strconv.AppendInt) on the hot path. Buffers larger than 64 KiB are not
// returned to the pool.
package presenter
