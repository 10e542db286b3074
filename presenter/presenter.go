package presenter

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/philipp01105/hlog/core"
)

// Presenter renders a record into the string handed to a dispatcher
type Presenter interface {
	Present(rec *core.Record, cfg core.Config) (string, error)
}

// Func adapts a plain function to the Presenter interface
type Func func(rec *core.Record, cfg core.Config) (string, error)

// Present calls f(rec, cfg)
func (f Func) Present(rec *core.Record, cfg core.Config) (string, error) {
	return f(rec, cfg)
}

// FormatMessage substitutes args into format with fmt semantics.
// Without args the format is returned verbatim. A verb/argument
// mismatch yields a *core.FormatError carrying fmt's marker, such as
// "%!d(MISSING)" or "%!d(string=x)".
func FormatMessage(format string, args []interface{}) (string, error) {
	if len(args) == 0 {
		return format, nil
	}
	out := fmt.Sprintf(format, args...)
	if reason := checkDirectives(format, args); reason != "" {
		if reason == extraMarker {
			reason = out[strings.LastIndex(out, extraMarker):]
		}
		return "", &core.FormatError{Format: format, Reason: reason}
	}
	return out, nil
}

const extraMarker = "%!(EXTRA "

// checkDirectives walks the directives of format against args and
// returns the first mismatch in fmt's notation, or "" when every
// directive has a suitable argument and every argument is used.
// Argument text never takes part, so values containing "%!" are safe.
func checkDirectives(format string, args []interface{}) string {
	argNum := 0
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			continue
		}
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}

		// width
		if i < len(format) && format[i] == '*' {
			if argNum >= len(args) || !isInt(args[argNum]) {
				return "%!(BADWIDTH)"
			}
			argNum++
			i++
		}
		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}

		// precision
		if i < len(format) && format[i] == '.' {
			i++
			if i < len(format) && format[i] == '*' {
				if argNum >= len(args) || !isInt(args[argNum]) {
					return "%!(BADPREC)"
				}
				argNum++
				i++
			}
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
		}

		if i < len(format) && format[i] == '[' {
			return checkIndexed(format, args)
		}
		if i >= len(format) {
			return "%!(NOVERB)"
		}

		verb, size := utf8.DecodeRuneInString(format[i:])
		i += size - 1
		if argNum >= len(args) {
			return "%!" + string(verb) + "(MISSING)"
		}
		if bad := badVerbFor(verb, args[argNum]); bad != "" {
			return bad
		}
		argNum++
	}
	if argNum < len(args) {
		return extraMarker
	}
	return ""
}

// badVerbFor renders arg alone with verb and compares the result with
// the text fmt writes for an unsupported verb
func badVerbFor(verb rune, arg interface{}) string {
	if verb == 'v' || verb == 'T' {
		return ""
	}
	var bad string
	if arg == nil {
		bad = "%!" + string(verb) + "(<nil>)"
	} else {
		bad = fmt.Sprintf("%%!%c(%T=%v)", verb, arg, arg)
	}
	if fmt.Sprintf("%"+string(verb), arg) == bad {
		return bad
	}
	return ""
}

func isInt(v interface{}) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// checkIndexed handles formats using explicit argument indexes such as
// "%[2]s". fmt only reports these through the output, so its markers
// are searched there, ignoring any that the arguments themselves carry.
func checkIndexed(format string, args []interface{}) string {
	out := fmt.Sprintf(format, args...)
	for _, marker := range []string{"%!(BADINDEX)", "(MISSING)", "%!(NOVERB)"} {
		if !strings.Contains(out, marker) {
			continue
		}
		fromArgs := false
		for _, a := range args {
			if strings.Contains(fmt.Sprint(a), marker) {
				fromArgs = true
				break
			}
		}
		if !fromArgs {
			return marker
		}
	}
	return ""
}

// ResolveMessage fills rec.Message from its format and args, using the
// format error placeholder on mismatch, and returns it.
func ResolveMessage(rec *core.Record) string {
	msg, err := FormatMessage(rec.MessageFmt, rec.Args)
	if err != nil {
		msg = err.Error() + " " + rec.MessageFmt
	}
	rec.Message = msg
	return msg
}

// Message renders only the substituted message
type Message struct{}

// Present implements Presenter
func (Message) Present(rec *core.Record, _ core.Config) (string, error) {
	return ResolveMessage(rec), nil
}

// Config holds common presenter configuration
type Config struct {
	// IncludeCaller adds file:line to the output
	IncludeCaller bool
	// TimestampFormat specifies the time format (empty for the presenter default)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 {
		return
	}
	bufferPool.Put(buf)
}
