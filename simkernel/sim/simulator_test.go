package sim

import (
	"testing"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simerr"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
)

func newBound(t *testing.T) *Simulator {
	t.Helper()
	s := NewSimulator()
	if err := s.UseScheduler(scheduler.NewHeapScheduler()); err != nil {
		t.Fatalf("UseScheduler: %v", err)
	}
	return s
}

func TestSimulator_RunWithoutSchedulerFails(t *testing.T) {
	s := NewSimulator()
	if err := s.Run(); !simerr.Is(err, simerr.Uninitialized) {
		t.Errorf("err = %v, want Uninitialized", err)
	}
}

func TestSimulator_UseSchedulerTwiceFails(t *testing.T) {
	s := NewSimulator()
	sc := scheduler.NewHeapScheduler()
	if err := s.UseScheduler(sc); err != nil {
		t.Fatalf("first UseScheduler: %v", err)
	}
	if err := s.UseScheduler(scheduler.NewHeapScheduler()); !simerr.Is(err, simerr.IllegalMethodCall) {
		t.Errorf("err = %v, want IllegalMethodCall", err)
	}
}

func TestSimulator_EmptyRunIsNoopButEmitsLifecycle(t *testing.T) {
	s := newBound(t)

	var began, ran, paused, ended int
	s.OnBegin(func() { began++ })
	s.OnRun(func() { ran++ })
	s.OnPause(func() { paused++ })
	s.OnEnd(func() { ended++ })

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if began != 1 || ran != 1 || paused != 1 || ended != 1 {
		t.Errorf("began=%d ran=%d paused=%d ended=%d, want all 1", began, ran, paused, ended)
	}
	if !s.Now().Equal(chrono.Epoch()) {
		t.Errorf("Now() = %s, want epoch", s.Now())
	}
}

func TestSimulator_ThreeEventOrdering(t *testing.T) {
	s := newBound(t)

	var order []int
	sc := s.scheduler

	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(3)), func() { order = append(order, 3) })
	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(1)), func() { order = append(order, 1) })
	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(2)), func() { order = append(order, 2) })

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []int{1, 2, 3}
	if len(order) != 3 || order[0] != want[0] || order[1] != want[1] || order[2] != want[2] {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !s.Now().Equal(chrono.Epoch().Add(chrono.Seconds(3))) {
		t.Errorf("Now() = %s, want t=3s", s.Now())
	}
}

func TestSimulator_FIFOTieBreak(t *testing.T) {
	s := newBound(t)
	sc := s.scheduler

	var order []string
	t1 := chrono.Epoch().Add(chrono.Seconds(1))
	sc.ScheduleAt(t1, func() { order = append(order, "first") })
	sc.ScheduleAt(t1, func() { order = append(order, "second") })

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}

func TestSimulator_LateCancelPreventsFire(t *testing.T) {
	s := newBound(t)
	sc := s.scheduler

	fired := false
	h, _ := sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(1)), func() { fired = true })
	h.Cancel()

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fired {
		t.Error("cancelled event should not have fired")
	}
}

func TestSimulator_SelfSchedulingCounter(t *testing.T) {
	s := newBound(t)
	sc := s.scheduler

	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 5 {
			sc.ScheduleIn(chrono.Seconds(1), tick)
		}
	}
	sc.ScheduleIn(chrono.Seconds(1), tick)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 5 {
		t.Errorf("count = %d, want 5", count)
	}
	if !s.Now().Equal(chrono.Epoch().Add(chrono.Seconds(5))) {
		t.Errorf("Now() = %s, want t=5s", s.Now())
	}
}

func TestSimulator_PauseFromWithinSink(t *testing.T) {
	s := newBound(t)
	sc := s.scheduler

	var order []int
	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(1)), func() {
		order = append(order, 1)
		s.Pause()
	})
	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(2)), func() {
		order = append(order, 2)
	})

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 1 || order[0] != 1 {
		t.Errorf("order = %v, want [1] (second event should not have fired)", order)
	}
	if !s.Now().Equal(chrono.Epoch().Add(chrono.Seconds(1))) {
		t.Errorf("Now() = %s, want t=1s", s.Now())
	}

	// Resuming should let the remaining event fire.
	if err := s.Run(); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2] after resume", order)
	}
}

func TestSimulator_RunUntilStopsAtBound(t *testing.T) {
	s := newBound(t)
	sc := s.scheduler

	var order []int
	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(1)), func() { order = append(order, 1) })
	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(5)), func() { order = append(order, 5) })

	if err := s.RunUntil(chrono.Epoch().Add(chrono.Seconds(2))); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	if len(order) != 1 || order[0] != 1 {
		t.Errorf("order = %v, want [1]", order)
	}
	if !s.Now().Equal(chrono.Epoch().Add(chrono.Seconds(2))) {
		t.Errorf("Now() = %s, want t=2s (the bound, not the next event's time)", s.Now())
	}
}

func TestSimulator_MonotonicAcrossRuns(t *testing.T) {
	s := newBound(t)
	sc := s.scheduler

	sc.ScheduleAt(chrono.Epoch().Add(chrono.Seconds(1)), func() {})
	if err := s.RunUntil(chrono.Epoch().Add(chrono.Seconds(1))); err != nil {
		t.Fatalf("RunUntil: %v", err)
	}
	before := s.Now()

	sc.ScheduleAt(before.Add(chrono.Seconds(1)), func() {})
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Now().Before(before) {
		t.Errorf("Now() went backwards: %s -> %s", before, s.Now())
	}
}
