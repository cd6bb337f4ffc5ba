package scheduler

import (
	"container/list"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simkernel/clock"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
)

// ListScheduler keeps pending handles in a doubly linked list, insertion
// sorted by (time, id). Insertion is O(N); peeking and popping the
// earliest event are both O(1). Best suited to small queues, or queues
// whose arrival order is already close to firing order.
type ListScheduler struct {
	base
	l *list.List // of *event.Handle
}

// NewListScheduler constructs an unbound ListScheduler. UseClock must be
// called before any Schedule* method.
func NewListScheduler() *ListScheduler {
	return &ListScheduler{l: list.New()}
}

// UseClock binds the scheduler's clock. See Scheduler.UseClock.
func (s *ListScheduler) UseClock(c clock.Clock) error { return s.base.useClock(c) }

// ScheduleNow schedules sink to fire at the clock's current time.
func (s *ListScheduler) ScheduleNow(sink event.Sink) (*event.Handle, error) {
	return s.ScheduleAt(s.now(), sink)
}

// ScheduleIn schedules sink to fire dt after the clock's current time.
func (s *ListScheduler) ScheduleIn(dt chrono.Duration, sink event.Sink) (*event.Handle, error) {
	return s.ScheduleAt(s.now().Add(dt), sink)
}

// ScheduleAt schedules sink to fire at t, inserting it in sorted
// position.
func (s *ListScheduler) ScheduleAt(t chrono.TimePoint, sink event.Sink) (*event.Handle, error) {
	id, err := s.validate(sink, t)
	if err != nil {
		return nil, err
	}
	h := event.NewHandle(id, t, sink)

	if s.l.Len() == 0 {
		s.l.PushFront(h)
		return h, nil
	}
	inserted := false
	for e := s.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*event.Handle).TimePoint().After(t) {
			s.l.InsertBefore(h, e)
			inserted = true
			break
		}
	}
	if !inserted {
		s.l.PushBack(h)
	}
	return h, nil
}

// GetNumEvents returns the number of handles still in the list.
func (s *ListScheduler) GetNumEvents() uint64 { return uint64(s.l.Len()) }

// GetNextEvent returns the earliest handle without removing it, or nil.
func (s *ListScheduler) GetNextEvent() *event.Handle {
	if s.l.Len() == 0 {
		return nil
	}
	return s.l.Front().Value.(*event.Handle)
}

// FireAndRemoveNextEvent fires and removes the earliest handle, if any.
func (s *ListScheduler) FireAndRemoveNextEvent() {
	if s.l.Len() == 0 {
		return
	}
	front := s.l.Front()
	front.Value.(*event.Handle).Fire()
	s.l.Remove(front)
}
