package presenter

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/philipp01105/hlog/core"
)

// ColorMode controls ANSI coloring of the level tag
type ColorMode int

const (
	// ColorNever disables coloring (default)
	ColorNever ColorMode = iota
	// ColorAlways forces coloring
	ColorAlways
	// ColorAuto colors when stdout is a terminal
	ColorAuto
)

// TextConfig configures the text presenter
type TextConfig struct {
	Config
	Color ColorMode
}

// Text renders records as a single human-readable line:
//
//	2026-01-02T15:04:05Z [INFO] app.db: message key=value
type Text struct {
	cfg   TextConfig
	color bool
}

// NewText creates a new text presenter
func NewText(cfg TextConfig) *Text {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339
	}
	t := &Text{cfg: cfg}
	switch cfg.Color {
	case ColorAlways:
		t.color = true
	case ColorAuto:
		fd := os.Stdout.Fd()
		t.color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
	return t
}

// pre-formatted level strings to avoid multiple WriteString calls
var levelBrackets = map[core.Level]string{
	core.DebugLevel:    " [DEBUG] ",
	core.InfoLevel:     " [INFO] ",
	core.WarnLevel:     " [WARN] ",
	core.ErrorLevel:    " [ERROR] ",
	core.CriticalLevel: " [CRITICAL] ",
}

var levelColors = map[core.Level]string{
	core.DebugLevel:    "\x1b[36m",
	core.InfoLevel:     "\x1b[32m",
	core.WarnLevel:     "\x1b[33m",
	core.ErrorLevel:    "\x1b[31m",
	core.CriticalLevel: "\x1b[1;31m",
}

const colorReset = "\x1b[0m"

// Present implements Presenter. The pipeline config key "color" (bool)
// overrides the configured color mode.
func (t *Text) Present(rec *core.Record, cfg core.Config) (string, error) {
	msg := ResolveMessage(rec)

	buf := getBuffer()
	defer putBuffer(buf)

	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), t.cfg.TimestampFormat))

	color := cfg.Bool("color", t.color)
	if color {
		if c, ok := levelColors[rec.Level]; ok {
			buf.WriteByte(' ')
			buf.WriteString(c)
			buf.WriteString(rec.LevelName)
			buf.WriteString(colorReset)
			buf.WriteByte(' ')
		} else {
			writeLevel(buf, rec)
		}
	} else {
		writeLevel(buf, rec)
	}

	if t.cfg.IncludeCaller && rec.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(rec.Caller.ShortFile)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(rec.Caller.Line))
		buf.WriteString("] ")
	}

	if rec.LoggerName != "" {
		buf.WriteString(rec.LoggerName)
		buf.WriteString(": ")
	}

	buf.WriteString(msg)
	writeContext(buf, rec.Context)

	return buf.String(), nil
}

func writeLevel(buf *bytes.Buffer, rec *core.Record) {
	if s, ok := levelBrackets[rec.Level]; ok {
		buf.WriteString(s)
		return
	}
	buf.WriteString(" [")
	buf.WriteString(rec.LevelName)
	buf.WriteString("] ")
}

// writeContext appends " key=value" pairs in key order
func writeContext(buf *bytes.Buffer, ctx core.Context) {
	if len(ctx) == 0 {
		return
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		buf.WriteByte(' ')
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(stringValue(ctx[k]))
	}
}

// stringValue returns the string representation of a context value
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case time.Duration:
		return val.String()
	case error:
		return val.Error()
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("%v", val)
	}
}
