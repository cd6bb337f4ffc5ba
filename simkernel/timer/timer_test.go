package timer

import (
	"testing"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simerr"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
	"github.com/Fuzzier/nsfx-sub003/simkernel/sim"
)

func newHarness(t *testing.T) (*sim.Simulator, *Timer) {
	t.Helper()
	s := sim.NewSimulator()
	sc := scheduler.NewHeapScheduler()
	if err := s.UseScheduler(sc); err != nil {
		t.Fatalf("UseScheduler: %v", err)
	}
	tm := NewTimer()
	if err := tm.UseClock(s); err != nil {
		t.Fatalf("UseClock: %v", err)
	}
	if err := tm.UseScheduler(sc); err != nil {
		t.Fatalf("UseScheduler: %v", err)
	}
	return s, tm
}

func TestTimer_StartWithoutBindingFails(t *testing.T) {
	tm := NewTimer()
	err := tm.StartNow(chrono.Seconds(1), func() {})
	if !simerr.Is(err, simerr.Uninitialized) {
		t.Errorf("err = %v, want Uninitialized", err)
	}
}

func TestTimer_NonPositivePeriodRejected(t *testing.T) {
	_, tm := newHarness(t)
	if err := tm.StartNow(chrono.Zero, func() {}); !simerr.Is(err, simerr.InvalidArgument) {
		t.Errorf("zero period: err = %v, want InvalidArgument", err)
	}
	if err := tm.StartNow(chrono.Seconds(-1), func() {}); !simerr.Is(err, simerr.InvalidArgument) {
		t.Errorf("negative period: err = %v, want InvalidArgument", err)
	}
}

func TestTimer_FiresPeriodically(t *testing.T) {
	s, tm := newHarness(t)

	var fireTimes []chrono.TimePoint
	if err := tm.StartAt(chrono.Epoch().Add(chrono.Seconds(1)), chrono.Seconds(1), func() {
		fireTimes = append(fireTimes, s.Now())
		if len(fireTimes) >= 3 {
			tm.Stop()
		}
	}); err != nil {
		t.Fatalf("StartAt: %v", err)
	}

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(fireTimes) != 3 {
		t.Fatalf("fired %d times, want 3", len(fireTimes))
	}
	for i, want := range []int64{1, 2, 3} {
		if !fireTimes[i].Equal(chrono.Epoch().Add(chrono.Seconds(want))) {
			t.Errorf("fireTimes[%d] = %s, want t=%ds", i, fireTimes[i], want)
		}
	}
}

func TestTimer_StopMidFireCancelsNextTick(t *testing.T) {
	s, tm := newHarness(t)

	calls := 0
	if err := tm.StartAt(chrono.Epoch().Add(chrono.Seconds(1)), chrono.Seconds(1), func() {
		calls++
		tm.Stop()
	}); err != nil {
		t.Fatalf("StartAt: %v", err)
	}

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (Stop inside the sink must cancel the next tick)", calls)
	}
}

func TestTimer_StopBeforeFirstFirePreventsAnyFire(t *testing.T) {
	s, tm := newHarness(t)

	fired := false
	if err := tm.StartAt(chrono.Epoch().Add(chrono.Seconds(1)), chrono.Seconds(1), func() { fired = true }); err != nil {
		t.Fatalf("StartAt: %v", err)
	}
	tm.Stop()

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fired {
		t.Error("timer sink fired despite Stop before the first tick")
	}
}
