package dispatcher

import (
	"io"

	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
)

// Multi sends each message to several dispatchers in order
type Multi struct {
	dispatchers []Dispatcher
}

// NewMulti creates a new fan-out dispatcher
func NewMulti(dispatchers ...Dispatcher) *Multi {
	return &Multi{dispatchers: dispatchers}
}

// Dispatch delivers to every child even when some fail and returns the
// combined error
func (m *Multi) Dispatch(msg string, rec *core.Record, cfg core.Config) error {
	var err error
	for _, d := range m.dispatchers {
		err = multierr.Append(err, d.Dispatch(msg, rec, cfg))
	}
	return err
}

// Close closes every child that implements io.Closer
func (m *Multi) Close() error {
	var err error
	for _, d := range m.dispatchers {
		if c, ok := d.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	return err
}
