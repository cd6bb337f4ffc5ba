// Package sim implements the simulator driver: it owns the simulated
// clock, dispatches events out of a bound scheduler.Scheduler, and
// notifies lifecycle observers as it transitions between begin, run,
// pause and end.
package sim

import (
	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/internal/logging"
	"github.com/Fuzzier/nsfx-sub003/simerr"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
)

// Simulator is the driver at the center of the kernel: it is itself a
// clock.Clock (Now reads the internal *now*), binds exactly one
// scheduler.Scheduler, and runs that scheduler's queue to completion or
// to a pause point.
//
// Simulator is not safe for concurrent use — the kernel's concurrency
// model is single-threaded cooperative dispatch. A sink invoked while
// FireAndRemoveNextEvent is on the stack effectively holds the
// Simulator exclusively; it may schedule further events but must not
// invoke Run/RunUntil/RunFor on the same Simulator (unspecified
// behaviour; this implementation does not attempt to detect it).
type Simulator struct {
	now         chrono.TimePoint
	scheduler   scheduler.Scheduler
	initialized bool
	started     bool
	paused      bool

	onBegin []func()
	onRun   []func()
	onPause []func()
	onEnd   []func()

	log *logging.Logger
}

// UseLogger attaches a Logger for scheduler-binding and lifecycle-
// transition diagnostics (debug level) and sink panics (error level).
// Optional; logging is a no-op until this is called. Must be called, if
// at all, before UseScheduler to capture the binding log line.
func (s *Simulator) UseLogger(l logging.Logger) {
	log := l.With("sim")
	s.log = &log
}

// NewSimulator constructs a Simulator with now at the epoch. UseScheduler
// must be called before any Run method.
func NewSimulator() *Simulator {
	return &Simulator{now: chrono.Epoch(), paused: true}
}

// UseScheduler binds the scheduler this Simulator will drive. May only be
// called once; a second call returns IllegalMethodCall. scheduler must not
// be nil.
func (s *Simulator) UseScheduler(sc scheduler.Scheduler) error {
	if s.initialized {
		return simerr.NewIllegalMethodCall("cannot change the scheduler after initialization")
	}
	if sc == nil {
		return simerr.NewInvalidPointer("scheduler must not be nil")
	}
	s.scheduler = sc
	s.initialized = true
	if err := sc.UseClock(s); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Debug("scheduler bound")
	}
	return nil
}

// Now returns the current simulated TimePoint. Implements clock.Clock, so
// a Simulator may be passed anywhere a Clock is required — in particular,
// to the scheduler it drives.
func (s *Simulator) Now() chrono.TimePoint { return s.now }

// OnBegin registers fn to be invoked the first time a run starts, before
// the first event fires. Returns an unsubscribe function.
func (s *Simulator) OnBegin(fn func()) (unsubscribe func()) {
	return subscribe(&s.onBegin, fn)
}

// OnRun registers fn to be invoked every time a run/run-until/run-for
// enters the dispatch loop. Returns an unsubscribe function.
func (s *Simulator) OnRun(fn func()) (unsubscribe func()) {
	return subscribe(&s.onRun, fn)
}

// OnPause registers fn to be invoked every time the dispatch loop exits
// (scheduler empty, time bound reached, or Pause observed). Returns an
// unsubscribe function.
func (s *Simulator) OnPause(fn func()) (unsubscribe func()) {
	return subscribe(&s.onPause, fn)
}

// OnEnd registers fn to be invoked once, when the scheduler becomes empty
// after a run. Returns an unsubscribe function.
func (s *Simulator) OnEnd(fn func()) (unsubscribe func()) {
	return subscribe(&s.onEnd, fn)
}

func subscribe(list *[]func(), fn func()) func() {
	*list = append(*list, fn)
	idx := len(*list) - 1
	return func() {
		(*list)[idx] = nil
	}
}

func fireAll(list []func()) {
	for _, fn := range list {
		if fn != nil {
			fn()
		}
	}
}

// Run dispatches events until the scheduler empties or Pause is called.
func (s *Simulator) Run() error {
	return s.run(nil)
}

// RunUntil dispatches events until the next event's time is strictly
// greater than t, the scheduler empties, or Pause is called. On exit, Now
// is at least the prior Now and at most t (assuming t was not already
// behind Now).
func (s *Simulator) RunUntil(t chrono.TimePoint) error {
	return s.run(&t)
}

// RunFor is RunUntil(Now() + dt).
func (s *Simulator) RunFor(dt chrono.Duration) error {
	return s.RunUntil(s.now.Add(dt))
}

// Pause sets a flag consulted between events. The currently firing event,
// if any, completes before the dispatch loop observes it.
func (s *Simulator) Pause() {
	s.paused = true
}

// run is the shared Run/RunUntil body. bound is nil for Run, or points
// at the inclusive upper time bound for RunUntil/RunFor.
func (s *Simulator) run(bound *chrono.TimePoint) error {
	if !s.initialized {
		return simerr.NewUninitialized("simulator has no bound scheduler")
	}

	s.checkBegin()
	s.paused = false
	if s.log != nil {
		s.log.Debug("run")
	}
	fireAll(s.onRun)

	for !s.paused {
		h := s.scheduler.GetNextEvent()
		if h == nil {
			if bound != nil {
				s.now = *bound
			}
			break
		}
		t0 := h.TimePoint()
		if bound != nil && t0.After(*bound) {
			s.now = *bound
			break
		}
		s.now = t0
		s.fireNext()
	}

	s.paused = true
	if s.log != nil {
		s.log.Debug("pause")
	}
	fireAll(s.onPause)
	s.checkEnd()
	return nil
}

// fireNext delegates to the bound scheduler's FireAndRemoveNextEvent. A
// panicking sink is logged at error level, then re-raised so it still
// propagates to the caller of Run/RunUntil/RunFor — this kernel does not
// swallow programmer errors in caller-supplied sinks.
func (s *Simulator) fireNext() {
	if s.log != nil {
		defer func() {
			if r := recover(); r != nil {
				s.log.Error("sink panicked", "panic", r)
				panic(r)
			}
		}()
	}
	s.scheduler.FireAndRemoveNextEvent()
}

func (s *Simulator) checkBegin() {
	if !s.started {
		s.started = true
		if s.log != nil {
			s.log.Debug("begin")
		}
		fireAll(s.onBegin)
	}
}

func (s *Simulator) checkEnd() {
	if s.scheduler.GetNumEvents() == 0 {
		if s.log != nil {
			s.log.Debug("end")
		}
		fireAll(s.onEnd)
	}
}
