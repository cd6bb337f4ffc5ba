package scheduler

import (
	"container/heap"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simkernel/clock"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
)

// HeapScheduler keeps pending handles in a binary min-heap ordered by
// (time, id). Insertion, peek-then-pop and removal are all O(log N),
// making it the best general-purpose choice for large queues.
type HeapScheduler struct {
	base
	h eventHeap
}

// NewHeapScheduler constructs an unbound HeapScheduler. UseClock must be
// called before any Schedule* method.
func NewHeapScheduler() *HeapScheduler {
	return &HeapScheduler{}
}

// UseClock binds the scheduler's clock. See Scheduler.UseClock.
func (s *HeapScheduler) UseClock(c clock.Clock) error { return s.base.useClock(c) }

// ScheduleNow schedules sink to fire at the clock's current time.
func (s *HeapScheduler) ScheduleNow(sink event.Sink) (*event.Handle, error) {
	return s.ScheduleAt(s.now(), sink)
}

// ScheduleIn schedules sink to fire dt after the clock's current time.
func (s *HeapScheduler) ScheduleIn(dt chrono.Duration, sink event.Sink) (*event.Handle, error) {
	return s.ScheduleAt(s.now().Add(dt), sink)
}

// ScheduleAt schedules sink to fire at t, pushing it onto the heap.
func (s *HeapScheduler) ScheduleAt(t chrono.TimePoint, sink event.Sink) (*event.Handle, error) {
	id, err := s.validate(sink, t)
	if err != nil {
		return nil, err
	}
	h := event.NewHandle(id, t, sink)
	heap.Push(&s.h, h)
	return h, nil
}

// GetNumEvents returns the number of handles still in the heap.
func (s *HeapScheduler) GetNumEvents() uint64 { return uint64(len(s.h)) }

// GetNextEvent returns the earliest handle without removing it, or nil.
func (s *HeapScheduler) GetNextEvent() *event.Handle {
	if len(s.h) == 0 {
		return nil
	}
	return s.h[0]
}

// FireAndRemoveNextEvent fires and removes the earliest handle, if any.
func (s *HeapScheduler) FireAndRemoveNextEvent() {
	if len(s.h) == 0 {
		return
	}
	h := heap.Pop(&s.h).(*event.Handle)
	h.Fire()
}

// eventHeap is a container/heap.Interface over *event.Handle, ordered by
// event.Less (time, then id).
type eventHeap []*event.Handle

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return event.Less(h[i], h[j]) }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(*event.Handle)) }
func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
