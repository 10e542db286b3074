package dispatcher

import (
	"sync/atomic"

	"github.com/philipp01105/hlog/core"
)

// OverflowPolicy defines how to handle full async queues
type OverflowPolicy int

const (
	// DropNewest drops the newest message when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued message when the queue is full
	DropOldest
	// Block blocks the caller until space is available (with timeout)
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy returns the default level-based overflow policies
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.DebugLevel:    DropNewest,
		core.InfoLevel:     DropNewest,
		core.WarnLevel:     DropNewest,
		core.ErrorLevel:    Block,
		core.CriticalLevel: Block,
	}
}

// Stats tracks async dispatcher statistics
type Stats struct {
	droppedDebug    atomic.Uint64
	droppedInfo     atomic.Uint64
	droppedWarn     atomic.Uint64
	droppedError    atomic.Uint64
	droppedCritical atomic.Uint64
	// droppedOther counts custom levels
	droppedOther atomic.Uint64
	blocked      atomic.Uint64
	processed    atomic.Uint64
	failed       atomic.Uint64
}

func (s *Stats) droppedCounter(level core.Level) *atomic.Uint64 {
	switch level {
	case core.DebugLevel:
		return &s.droppedDebug
	case core.InfoLevel:
		return &s.droppedInfo
	case core.WarnLevel:
		return &s.droppedWarn
	case core.ErrorLevel:
		return &s.droppedError
	case core.CriticalLevel:
		return &s.droppedCritical
	default:
		return &s.droppedOther
	}
}

// IncrementDropped atomically increments the dropped counter for a level
func (s *Stats) IncrementDropped(level core.Level) {
	s.droppedCounter(level).Add(1)
}

// IncrementBlocked atomically increments the blocked counter
func (s *Stats) IncrementBlocked() { s.blocked.Add(1) }

// IncrementProcessed atomically increments the processed counter
func (s *Stats) IncrementProcessed() { s.processed.Add(1) }

// IncrementFailed atomically increments the failed counter
func (s *Stats) IncrementFailed() { s.failed.Add(1) }

// GetDropped returns the dropped count for a level
func (s *Stats) GetDropped(level core.Level) uint64 {
	return s.droppedCounter(level).Load()
}

// GetTotalDropped returns the total dropped across all levels
func (s *Stats) GetTotalDropped() uint64 {
	return s.droppedDebug.Load() +
		s.droppedInfo.Load() +
		s.droppedWarn.Load() +
		s.droppedError.Load() +
		s.droppedCritical.Load() +
		s.droppedOther.Load()
}

// Reset resets all counters to zero
func (s *Stats) Reset() {
	for _, c := range []*atomic.Uint64{
		&s.droppedDebug, &s.droppedInfo, &s.droppedWarn, &s.droppedError,
		&s.droppedCritical, &s.droppedOther, &s.blocked, &s.processed, &s.failed,
	} {
		c.Store(0)
	}
}

// Snapshot is a point-in-time copy of Stats
type Snapshot struct {
	DroppedTotal   map[core.Level]uint64
	BlockedTotal   uint64
	ProcessedTotal uint64
	FailedTotal    uint64
}

// GetSnapshot returns a snapshot of current statistics
func (s *Stats) GetSnapshot() Snapshot {
	return Snapshot{
		DroppedTotal: map[core.Level]uint64{
			core.DebugLevel:    s.droppedDebug.Load(),
			core.InfoLevel:     s.droppedInfo.Load(),
			core.WarnLevel:     s.droppedWarn.Load(),
			core.ErrorLevel:    s.droppedError.Load(),
			core.CriticalLevel: s.droppedCritical.Load(),
		},
		BlockedTotal:   s.blocked.Load(),
		ProcessedTotal: s.processed.Load(),
		FailedTotal:    s.failed.Load(),
	}
}
