package benchmark

import (
	"github.com/philipp01105/hlog/core"
	"github.com/philipp01105/hlog/dispatcher"
)

// noopDispatcher touches the message so the presenter's work is not
// optimized away, then drops it
type noopDispatcher struct{}

func newNoopDispatcher() dispatcher.Dispatcher {
	return noopDispatcher{}
}

func (noopDispatcher) Dispatch(msg string, _ *core.Record, _ core.Config) error {
	_ = len(msg)
	return nil
}
