package logger

import (
	"bytes"
	"sync"

	"github.com/philipp01105/hlog/core"
)

// recorder is a dispatcher that keeps everything it receives
type recorder struct {
	mu      sync.Mutex
	msgs    []string
	records []*core.Record
	configs []core.Config
}

func (r *recorder) Dispatch(msg string, rec *core.Record, cfg core.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	r.records = append(r.records, rec)
	r.configs = append(r.configs, cfg)
	return nil
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func (r *recorder) last() *core.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.records) == 0 {
		return nil
	}
	return r.records[len(r.records)-1]
}

// newTestRegistry returns a registry at Debug level whose diagnostics
// go to the returned buffer
func newTestRegistry() (*Registry, *bytes.Buffer) {
	var diag bytes.Buffer
	reg := NewRegistryBuilder().
		WithDefaultLevel(DebugLevel).
		WithErrorWriter(&diag).
		Build()
	return reg, &diag
}
