package probe

import (
	"testing"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
	"github.com/Fuzzier/nsfx-sub003/simkernel/sim"
)

func TestAttach_LifecycleCounts(t *testing.T) {
	s := sim.NewSimulator()
	sc := scheduler.NewHeapScheduler()
	if err := s.UseScheduler(sc); err != nil {
		t.Fatalf("UseScheduler: %v", err)
	}

	p := New()
	detach := p.Attach(s)
	defer detach()

	if _, err := sc.ScheduleIn(chrono.Seconds(1), func() {}); err != nil {
		t.Fatalf("ScheduleIn: %v", err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	snap := p.Snapshot()
	if snap.BeginCount != 1 || snap.RunCount != 1 || snap.PauseCount != 1 || snap.EndCount != 1 {
		t.Errorf("lifecycle counts = %+v, want all 1", snap)
	}
}

func TestWrap_RecordsFireCountAndGap(t *testing.T) {
	s := sim.NewSimulator()
	inner := scheduler.NewHeapScheduler()
	if err := s.UseScheduler(inner); err != nil {
		t.Fatalf("UseScheduler: %v", err)
	}

	p := New()
	wrapped := p.Wrap(inner)

	if _, err := wrapped.ScheduleIn(chrono.Seconds(1), func() {}); err != nil {
		t.Fatalf("ScheduleIn: %v", err)
	}
	if _, err := wrapped.ScheduleIn(chrono.Seconds(3), func() {}); err != nil {
		t.Fatalf("ScheduleIn: %v", err)
	}

	for wrapped.GetNumEvents() > 0 {
		wrapped.FireAndRemoveNextEvent()
	}

	snap := p.Snapshot()
	if snap.FireCount != 2 {
		t.Fatalf("FireCount = %d, want 2", snap.FireCount)
	}
	// The gap histogram keeps sigFigs significant figures, so Max reports
	// the highest value equivalent to the recorded 2s gap, not 2s exactly.
	ref := hdrhistogram.New(minValue, maxValue, sigFigs)
	ref.RecordValue(chrono.Seconds(2).Ticks())
	wantGap := ref.Max()
	if snap.InterEventGap.Max != wantGap {
		t.Errorf("InterEventGap.Max = %d, want %d", snap.InterEventGap.Max, wantGap)
	}
}

func TestWrap_RecordsQueueDepth(t *testing.T) {
	s := sim.NewSimulator()
	inner := scheduler.NewListScheduler()
	if err := s.UseScheduler(inner); err != nil {
		t.Fatalf("UseScheduler: %v", err)
	}

	p := New()
	wrapped := p.Wrap(inner)

	for i := 0; i < 3; i++ {
		if _, err := wrapped.ScheduleIn(chrono.Seconds(int64(i+1)), func() {}); err != nil {
			t.Fatalf("ScheduleIn: %v", err)
		}
	}

	snap := p.Snapshot()
	if snap.QueueDepth.Max < 3 {
		t.Errorf("QueueDepth.Max = %d, want at least 3", snap.QueueDepth.Max)
	}
}
