// Package timer implements a periodic re-arming timer layered on top of
// a scheduler.Scheduler: each fire invokes the caller's sink, then
// reschedules itself one period later.
package timer

import (
	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simerr"
	"github.com/Fuzzier/nsfx-sub003/simkernel/clock"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
)

// Timer is a thin stateful wrapper that re-arms itself on a
// scheduler.Scheduler every period, until Stop is called. It is not
// itself a Scheduler entry — it holds exactly one outstanding
// event.Handle at a time.
type Timer struct {
	clock       clock.Clock
	scheduler   scheduler.Scheduler
	initialized bool

	sink    event.Sink
	period  chrono.Duration
	next    chrono.TimePoint
	handle  *event.Handle
	stopped bool
}

// NewTimer constructs an unbound Timer. UseClock and UseScheduler must
// both be called before StartAt/StartNow.
func NewTimer() *Timer {
	return &Timer{}
}

// UseClock binds the timer's clock. May only be called once.
func (t *Timer) UseClock(c clock.Clock) error {
	if c == nil {
		return simerr.NewInvalidPointer("clock must not be nil")
	}
	if t.clock != nil {
		return simerr.NewIllegalMethodCall("cannot change the clock after initialization")
	}
	t.clock = c
	t.checkInitialized()
	return nil
}

// UseScheduler binds the scheduler the timer reschedules itself on. May
// only be called once.
func (t *Timer) UseScheduler(sc scheduler.Scheduler) error {
	if sc == nil {
		return simerr.NewInvalidPointer("scheduler must not be nil")
	}
	if t.scheduler != nil {
		return simerr.NewIllegalMethodCall("cannot change the scheduler after initialization")
	}
	t.scheduler = sc
	t.checkInitialized()
	return nil
}

func (t *Timer) checkInitialized() {
	if t.clock != nil && t.scheduler != nil {
		t.initialized = true
	}
}

// StartNow schedules the first fire at the clock's current time, then
// every period thereafter.
func (t *Timer) StartNow(period chrono.Duration, sink event.Sink) error {
	if !t.initialized {
		return simerr.NewUninitialized("timer has no bound clock/scheduler")
	}
	return t.startAt(t.clock.Now(), period, sink)
}

// StartAt schedules the first fire at t0, then every period thereafter.
func (t *Timer) StartAt(t0 chrono.TimePoint, period chrono.Duration, sink event.Sink) error {
	if !t.initialized {
		return simerr.NewUninitialized("timer has no bound clock/scheduler")
	}
	return t.startAt(t0, period, sink)
}

func (t *Timer) startAt(t0 chrono.TimePoint, period chrono.Duration, sink event.Sink) error {
	if sink == nil {
		return simerr.NewInvalidPointer("sink must not be nil")
	}
	if !period.Greater(chrono.Zero) {
		return simerr.NewInvalidArgument("timer period must be positive")
	}
	t.sink = sink
	t.period = period
	t.next = t0
	t.stopped = false
	return t.scheduleNext()
}

func (t *Timer) scheduleNext() error {
	h, err := t.scheduler.ScheduleAt(t.next, t.fire)
	if err != nil {
		return err
	}
	t.handle = h
	return nil
}

// fire is the scheduler-invoked callback: it runs the user sink first,
// then checks whether Stop was called from within that sink before
// advancing and rescheduling. This ordering is what lets Stop called
// mid-fire cancel the not-yet-scheduled next tick.
func (t *Timer) fire() {
	t.handle = nil
	sink := t.sink
	if sink != nil {
		sink()
	}
	if t.stopped {
		return
	}
	t.next = t.next.Add(t.period)
	t.scheduleNext()
}

// Stop cancels the outstanding handle, if any, and releases the sink. If
// called from within the currently firing sink, it prevents that fire
// from rescheduling a next tick.
func (t *Timer) Stop() {
	t.stopped = true
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
	t.sink = nil
}
