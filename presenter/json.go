package presenter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/philipp01105/hlog/core"
)

// JSON renders records as a single JSON object
type JSON struct {
	cfg Config
}

// NewJSON creates a new JSON presenter
func NewJSON(cfg Config) *JSON {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = time.RFC3339Nano
	}
	return &JSON{cfg: cfg}
}

// Present implements Presenter
func (j *JSON) Present(rec *core.Record, _ core.Config) (string, error) {
	msg := ResolveMessage(rec)

	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteString(`{"time":"`)
	buf.Write(rec.Time.AppendFormat(buf.AvailableBuffer(), j.cfg.TimestampFormat))

	buf.WriteString(`","level":"`)
	appendJSONString(buf, rec.LevelName)

	buf.WriteString(`","logger":"`)
	appendJSONString(buf, rec.LoggerName)

	if rec.SourceLoggerName != rec.LoggerName {
		buf.WriteString(`","source":"`)
		appendJSONString(buf, rec.SourceLoggerName)
	}

	buf.WriteString(`","message":"`)
	appendJSONString(buf, msg)
	buf.WriteByte('"')

	if j.cfg.IncludeCaller && rec.Caller.Defined {
		buf.WriteString(`,"caller":{"file":"`)
		appendJSONString(buf, rec.Caller.ShortFile)
		buf.WriteString(`","line":`)
		buf.WriteString(strconv.Itoa(rec.Caller.Line))
		if rec.Caller.Function != "" {
			buf.WriteString(`,"function":"`)
			appendJSONString(buf, rec.Caller.Function)
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}

	if len(rec.Context) > 0 {
		keys := make([]string, 0, len(rec.Context))
		for k := range rec.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteString(`,"context":{`)
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			appendJSONString(buf, k)
			buf.WriteString(`":`)
			appendJSONValue(buf, rec.Context[k])
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.String(), nil
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONValue writes a JSON-encoded context value to the buffer
func appendJSONValue(buf *bytes.Buffer, v interface{}) {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case string:
		buf.WriteByte('"')
		appendJSONString(buf, val)
		buf.WriteByte('"')
	case int:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(val), 10))
	case int64:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), val, 10))
	case float64:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), val, 'f', -1, 64))
	case bool:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), val))
	case time.Time:
		buf.WriteByte('"')
		buf.Write(val.AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case time.Duration:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(val), 10))
	case error:
		buf.WriteByte('"')
		appendJSONString(buf, val.Error())
		buf.WriteByte('"')
	default:
		data, err := json.Marshal(val)
		if err != nil {
			buf.WriteByte('"')
			appendJSONString(buf, fmt.Sprintf("%v", val))
			buf.WriteByte('"')
			return
		}
		buf.Write(data)
	}
}
