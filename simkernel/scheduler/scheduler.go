// Package scheduler provides the event scheduler contract and three
// interchangeable implementations — an ordered linked list, a balanced
// ordered tree, and a binary heap — that trade insertion cost against
// dequeue cost while preserving the same (time, id) firing order.
package scheduler

import (
	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simerr"
	"github.com/Fuzzier/nsfx-sub003/simkernel/clock"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
)

// Scheduler is an ordered queue of pending events. ScheduleNow, ScheduleIn
// and ScheduleAt insert a new Pending Handle; GetNextEvent peeks the
// earliest one under the (time, id) order without removing it;
// FireAndRemoveNextEvent removes it, firing it first unless it was
// cancelled. GetNumEvents counts both Pending and Cancelled handles still
// occupying a slot — cancellation does not shrink the count until the
// scheduler reaches that slot during dispatch.
//
// A Scheduler is bound to exactly one Clock, exactly once, before any
// scheduling call. Implementations are not safe for concurrent use; the
// kernel's concurrency model is single-threaded cooperative dispatch.
type Scheduler interface {
	// UseClock binds the scheduler to a Clock. May only be called once;
	// a second call returns an IllegalMethodCall error. c must not be
	// nil.
	UseClock(c clock.Clock) error

	// ScheduleNow schedules sink to fire at clock.Now().
	ScheduleNow(sink event.Sink) (*event.Handle, error)

	// ScheduleIn schedules sink to fire at clock.Now() + dt.
	ScheduleIn(dt chrono.Duration, sink event.Sink) (*event.Handle, error)

	// ScheduleAt schedules sink to fire at t. t must not precede
	// clock.Now().
	ScheduleAt(t chrono.TimePoint, sink event.Sink) (*event.Handle, error)

	// GetNumEvents returns the count of Pending and Cancelled handles
	// still queued.
	GetNumEvents() uint64

	// GetNextEvent returns the earliest handle under the (time, id)
	// order without removing it, or nil if the scheduler is empty.
	GetNextEvent() *event.Handle

	// FireAndRemoveNextEvent removes the earliest handle and fires it
	// unless it was already cancelled. A no-op on an empty scheduler.
	FireAndRemoveNextEvent()
}

// base holds the clock binding and id counter shared by every
// implementation, and the precondition checks common to all three
// Schedule* entry points.
type base struct {
	clock       clock.Clock
	initialized bool
	nextID      event.Id
}

func (b *base) useClock(c clock.Clock) error {
	if b.initialized {
		return simerr.NewIllegalMethodCall("scheduler clock already bound")
	}
	if c == nil {
		return simerr.NewInvalidPointer("clock must not be nil")
	}
	b.clock = c
	b.initialized = true
	return nil
}

// now returns the bound clock's current time, or the epoch while no clock
// is bound, so ScheduleNow/ScheduleIn reach validate and report
// Uninitialized instead of dereferencing a nil clock.
func (b *base) now() chrono.TimePoint {
	if b.clock == nil {
		return chrono.Epoch()
	}
	return b.clock.Now()
}

// validate checks the common Schedule* preconditions and returns the
// assigned event id on success.
func (b *base) validate(sink event.Sink, t chrono.TimePoint) (event.Id, error) {
	if !b.initialized {
		return 0, simerr.NewUninitialized("scheduler has no bound clock")
	}
	if sink == nil {
		return 0, simerr.NewInvalidPointer("sink must not be nil")
	}
	now := b.clock.Now()
	if t.Before(now) {
		return 0, simerr.NewScheduleInPast(now, t)
	}
	id := b.nextID
	b.nextID++
	return id, nil
}
