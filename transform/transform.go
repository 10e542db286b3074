package transform

import (
	"github.com/google/uuid"

	"github.com/philipp01105/hlog/core"
)

// Transformer enriches or rewrites a record before presentation.
//
// The record passed in is a copy owned by the call: it may be changed in
// place and returned, or replaced. When Transform fails, the record it
// was given is discarded and the pipeline continues with the one the
// previous transformer produced. Context values are copied shallowly, so
// nested maps or slices inside them must not be modified.
type Transformer interface {
	Transform(rec *core.Record) (*core.Record, error)
}

// Func adapts a plain function to the Transformer interface
type Func func(rec *core.Record) (*core.Record, error)

// Transform calls f(rec)
func (f Func) Transform(rec *core.Record) (*core.Record, error) {
	return f(rec)
}

// StaticContext merges fixed key/value pairs into each record's context.
// Keys already present on the record win.
func StaticContext(ctx core.Context) Transformer {
	fixed := ctx.Clone()
	return Func(func(rec *core.Record) (*core.Record, error) {
		if len(fixed) == 0 {
			return rec, nil
		}
		if rec.Context == nil {
			rec.Context = make(core.Context, len(fixed))
		}
		for k, v := range fixed {
			if _, ok := rec.Context[k]; !ok {
				rec.Context[k] = v
			}
		}
		return rec, nil
	})
}

// RecordID stamps each record with a random UUID under key
// (default "record_id").
func RecordID(key string) Transformer {
	if key == "" {
		key = "record_id"
	}
	return Func(func(rec *core.Record) (*core.Record, error) {
		id, err := uuid.NewRandom()
		if err != nil {
			return rec, err
		}
		if rec.Context == nil {
			rec.Context = core.Context{}
		}
		rec.Context[key] = id.String()
		return rec, nil
	})
}

// Redacted replaces values removed by Redact
const Redacted = "[REDACTED]"

// Redact replaces the context values of the given keys
func Redact(keys ...string) Transformer {
	return Func(func(rec *core.Record) (*core.Record, error) {
		for _, k := range keys {
			if _, ok := rec.Context[k]; ok {
				rec.Context[k] = Redacted
			}
		}
		return rec, nil
	})
}
