package core

import (
	"sync"
	"sync/atomic"
	"time"
)

var (
	coarseClockOnce sync.Once
	coarseNow       atomic.Pointer[time.Time]
)

// StartCoarseClock starts the background goroutine that caches
// time.Now() every 500µs. It is safe to call multiple times; the
// goroutine is started exactly once and runs for the lifetime of the
// process.
func StartCoarseClock() {
	coarseClockOnce.Do(func() {
		t := time.Now()
		coarseNow.Store(&t)
		go func() {
			ticker := time.NewTicker(500 * time.Microsecond)
			for range ticker.C {
				t := time.Now()
				coarseNow.Store(&t)
			}
		}()
	})
}

// CoarseNow returns the most recently cached time, or time.Now() when
// the coarse clock has not been started.
func CoarseNow() time.Time {
	if t := coarseNow.Load(); t != nil {
		return *t
	}
	return time.Now()
}
