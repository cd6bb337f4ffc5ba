// Package runner wires a loaded scenario onto a fresh Simulator and
// scheduler implementation, submits every event and timer it describes,
// drives the run to completion (or to its run-until bound), and hands
// back a populated probe.Snapshot.
package runner

import (
	"fmt"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/internal/logging"
	"github.com/Fuzzier/nsfx-sub003/internal/probe"
	"github.com/Fuzzier/nsfx-sub003/internal/scenario"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
	"github.com/Fuzzier/nsfx-sub003/simkernel/sim"
	"github.com/Fuzzier/nsfx-sub003/simkernel/timer"
)

// NewScheduler constructs the scheduler.Scheduler implementation named
// by impl: "list", "heap" or "set".
func NewScheduler(impl string) (scheduler.Scheduler, error) {
	switch impl {
	case "list":
		return scheduler.NewListScheduler(), nil
	case "heap":
		return scheduler.NewHeapScheduler(), nil
	case "set":
		return scheduler.NewSetScheduler(), nil
	default:
		return nil, fmt.Errorf("unknown scheduler implementation %q", impl)
	}
}

// Result is everything a caller needs after a scenario finishes running.
type Result struct {
	Snapshot probe.Snapshot
	Fired    []string // names of one-shot events and timer ticks that actually fired, in firing order
}

// Run submits sc's events and timers onto a fresh Simulator bound to
// impl, runs it to completion (or to sc.RunUntil if set), and returns
// the collected probe snapshot. log is attached to the Simulator before
// binding the scheduler so "scheduler bound" is captured; a nil log
// leaves kernel logging as a no-op.
func Run(sc *scenario.Scenario, impl string, log *logging.Logger) (*Result, error) {
	sched, err := NewScheduler(impl)
	if err != nil {
		return nil, err
	}

	simulator := sim.NewSimulator()
	if log != nil {
		simulator.UseLogger(*log)
	}
	if err := simulator.UseScheduler(sched); err != nil {
		return nil, fmt.Errorf("binding scheduler: %w", err)
	}

	p := probe.New()
	detach := p.Attach(simulator)
	defer detach()
	wrapped := p.Wrap(sched)

	result := &Result{}

	for _, ev := range sc.Events {
		name := ev.Name
		at := chrono.Epoch().Add(ev.At)
		if _, err := wrapped.ScheduleAt(at, func() {
			result.Fired = append(result.Fired, name)
		}); err != nil {
			return nil, fmt.Errorf("scheduling event %q: %w", name, err)
		}
	}

	timers := make([]*timer.Timer, 0, len(sc.Timers))
	for _, tm := range sc.Timers {
		tm := tm
		remaining := tm.Count
		tmr := timer.NewTimer()
		if err := tmr.UseClock(simulator); err != nil {
			return nil, fmt.Errorf("binding timer %q clock: %w", tm.Name, err)
		}
		if err := tmr.UseScheduler(wrapped); err != nil {
			return nil, fmt.Errorf("binding timer %q scheduler: %w", tm.Name, err)
		}

		sink := event.Sink(func() {
			result.Fired = append(result.Fired, tm.Name)
			if remaining > 0 {
				remaining--
				if remaining == 0 {
					tmr.Stop()
				}
			}
		})

		startAt := chrono.Epoch().Add(tm.Start)
		if err := tmr.StartAt(startAt, tm.Period, sink); err != nil {
			return nil, fmt.Errorf("starting timer %q: %w", tm.Name, err)
		}
		timers = append(timers, tmr)
	}

	if sc.RunUntil != nil {
		bound := chrono.Epoch().Add(*sc.RunUntil)
		if err := simulator.RunUntil(bound); err != nil {
			return nil, fmt.Errorf("running scenario %q: %w", sc.Name, err)
		}
	} else {
		if err := simulator.Run(); err != nil {
			return nil, fmt.Errorf("running scenario %q: %w", sc.Name, err)
		}
	}

	result.Snapshot = p.Snapshot()
	return result, nil
}
