package engine

import (
	"sync"
	"time"
)

// TickHandle identifies a requested tick so it can be cancelled.
type TickHandle uint64

// Scheduler is the host's timer. ScheduleNextTick runs cb once, on the
// host's next frame or timer, with the current monotonic time.
type Scheduler interface {
	ScheduleNextTick(cb func(now time.Time)) TickHandle
	CancelTick(h TickHandle)
}

type pendingTick struct {
	handle TickHandle
	cb     func(now time.Time)
}

// FrameScheduler queues tick requests until a frame-driven host drains them
// with RunPending. Callbacks scheduled while draining wait for the next
// RunPending call, so each tick runs at most once per frame.
type FrameScheduler struct {
	mu      sync.Mutex
	next    TickHandle
	pending []pendingTick
}

func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{}
}

func (s *FrameScheduler) ScheduleNextTick(cb func(now time.Time)) TickHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.pending = append(s.pending, pendingTick{handle: s.next, cb: cb})
	return s.next
}

func (s *FrameScheduler) CancelTick(h TickHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.handle == h {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// RunPending runs every callback queued before the call and reports how many
// ran.
func (s *FrameScheduler) RunPending(now time.Time) int {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, p := range batch {
		p.cb(now)
	}
	return len(batch)
}

func (s *FrameScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
