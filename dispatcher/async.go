package dispatcher

import (
	"io"
	"sync"
	"time"

	"go.uber.org/multierr"

	"github.com/philipp01105/hlog/core"
)

// AsyncConfig holds configuration for the async wrapper
type AsyncConfig struct {
	// BufferSize is the size of the queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: DefaultLevelPolicy)
	OverflowPolicy map[core.Level]OverflowPolicy
	// BlockTimeout bounds the Block policy; on timeout the message is
	// delivered synchronously (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout bounds draining the queue on Close (default: 5s)
	DrainTimeout time.Duration
	// OnError receives errors returned by the wrapped dispatcher from
	// the background goroutine (default: ignored, counted in Stats)
	OnError func(err error, rec *core.Record)
}

type asyncJob struct {
	msg string
	rec *core.Record
	cfg core.Config
}

// Async delivers messages to a wrapped dispatcher from a background goroutine
type Async struct {
	next           Dispatcher
	queue          chan asyncJob
	closed         chan struct{}
	closeOnce      sync.Once
	wg             sync.WaitGroup
	overflowPolicy map[core.Level]OverflowPolicy
	blockTimeout   time.Duration
	drainTimeout   time.Duration
	onError        func(err error, rec *core.Record)
	stats          Stats
}

// NewAsync wraps next with a bounded queue
func NewAsync(next Dispatcher, cfg AsyncConfig) *Async {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.OverflowPolicy == nil {
		cfg.OverflowPolicy = DefaultLevelPolicy()
	}
	if cfg.BlockTimeout == 0 {
		cfg.BlockTimeout = 100 * time.Millisecond
	}
	if cfg.DrainTimeout == 0 {
		cfg.DrainTimeout = 5 * time.Second
	}

	a := &Async{
		next:           next,
		queue:          make(chan asyncJob, cfg.BufferSize),
		closed:         make(chan struct{}),
		overflowPolicy: cfg.OverflowPolicy,
		blockTimeout:   cfg.BlockTimeout,
		drainTimeout:   cfg.DrainTimeout,
		onError:        cfg.OnError,
	}
	a.wg.Add(1)
	go a.process()
	return a
}

// Dispatch enqueues the message. The record is owned by the pipeline
// that produced it, so it can be handed to the goroutine as is.
func (a *Async) Dispatch(msg string, rec *core.Record, cfg core.Config) error {
	job := asyncJob{msg: msg, rec: rec, cfg: cfg}

	select {
	case <-a.closed:
		return ErrClosed
	default:
	}

	policy, ok := a.overflowPolicy[rec.Level]
	if !ok {
		policy = DropNewest
	}

	switch policy {
	case Block:
		select {
		case a.queue <- job:
			return nil
		default:
		}
		timer := time.NewTimer(a.blockTimeout)
		defer timer.Stop()
		select {
		case a.queue <- job:
			return nil
		case <-timer.C:
			a.stats.IncrementBlocked()
			return a.deliver(job)
		case <-a.closed:
			return a.deliver(job)
		}

	case DropOldest:
		select {
		case a.queue <- job:
			return nil
		default:
		}
		select {
		case old := <-a.queue:
			a.stats.IncrementDropped(old.rec.Level)
		default:
		}
		select {
		case a.queue <- job:
		default:
			a.stats.IncrementDropped(rec.Level)
		}
		return nil

	default:
		select {
		case a.queue <- job:
		default:
			a.stats.IncrementDropped(rec.Level)
		}
		return nil
	}
}

// deliver runs the wrapped dispatcher and updates counters
func (a *Async) deliver(job asyncJob) error {
	err := a.next.Dispatch(job.msg, job.rec, job.cfg)
	if err != nil {
		a.stats.IncrementFailed()
		return err
	}
	a.stats.IncrementProcessed()
	return nil
}

// process drains the queue until Close
func (a *Async) process() {
	defer a.wg.Done()

	for {
		select {
		case job := <-a.queue:
			a.handle(job)
		case <-a.closed:
			deadline := time.After(a.drainTimeout)
			for {
				select {
				case job := <-a.queue:
					a.handle(job)
				case <-deadline:
					return
				default:
					return
				}
			}
		}
	}
}

func (a *Async) handle(job asyncJob) {
	if err := a.deliver(job); err != nil && a.onError != nil {
		a.onError(err, job.rec)
	}
}

// Stats returns a snapshot of the current statistics
func (a *Async) Stats() Snapshot {
	return a.stats.GetSnapshot()
}

// Close stops accepting messages, drains the queue and closes the
// wrapped dispatcher when it implements io.Closer
func (a *Async) Close() error {
	var err error
	a.closeOnce.Do(func() {
		close(a.closed)
		a.wg.Wait()
		if c, ok := a.next.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	})
	return err
}
