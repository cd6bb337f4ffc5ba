// Package probe observes a running simulation from the outside: it
// subscribes to a sim.Simulator's lifecycle events and wraps a
// scheduler.Scheduler to sample queue depth and the distribution of
// inter-event gaps, without the kernel itself knowing it is being
// watched. Probes are explicitly not part of the simulation kernel —
// they are the kind of external collaborator spec.md describes as
// feeding off the kernel's public surface.
package probe

import (
	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/Fuzzier/nsfx-sub003/chrono"
	"github.com/Fuzzier/nsfx-sub003/simkernel/clock"
	"github.com/Fuzzier/nsfx-sub003/simkernel/event"
	"github.com/Fuzzier/nsfx-sub003/simkernel/scheduler"
	"github.com/Fuzzier/nsfx-sub003/simkernel/sim"
)

const (
	// Inter-event gaps and queue depths are recorded in raw ticks /
	// queue-slot counts; a span of one tick to one simulated day covers
	// every scenario this kernel is meant to run.
	minValue = 1
	maxValue = int64(chrono.TicksPerSecond) * 60 * 60 * 24
	sigFigs  = 3
)

// Probe accumulates statistics for a single simulation run. The zero
// value is not usable; construct one with New.
type Probe struct {
	gapHist   *hdrhistogram.Histogram
	depthHist *hdrhistogram.Histogram

	lastFire  chrono.TimePoint
	hasLast   bool
	begun     int
	ended     int
	runs      int
	pauses    int
	fireCount int64
}

// New constructs an empty Probe.
func New() *Probe {
	return &Probe{
		gapHist:   hdrhistogram.New(minValue, maxValue, sigFigs),
		depthHist: hdrhistogram.New(minValue, maxValue, sigFigs),
	}
}

// Attach subscribes the probe to s's lifecycle notifications. Returns an
// unsubscribe function that detaches all four observers.
func (p *Probe) Attach(s *sim.Simulator) (detach func()) {
	u1 := s.OnBegin(func() { p.begun++ })
	u2 := s.OnRun(func() { p.runs++ })
	u3 := s.OnPause(func() { p.pauses++ })
	u4 := s.OnEnd(func() { p.ended++ })
	return func() { u1(); u2(); u3(); u4() }
}

// Wrap returns a scheduler.Scheduler that delegates to inner, sampling
// queue depth after every Schedule* and FireAndRemoveNextEvent call and
// the gap between consecutive firings (in ticks) whenever an event fires.
func (p *Probe) Wrap(inner scheduler.Scheduler) scheduler.Scheduler {
	return &decorated{inner: inner, probe: p}
}

// Snapshot is a point-in-time, immutable view of everything the probe
// has recorded so far.
type Snapshot struct {
	BeginCount    int
	RunCount      int
	PauseCount    int
	EndCount      int
	FireCount     int64
	InterEventGap LatencyStats // ticks between consecutive firings
	QueueDepth    LatencyStats // scheduler.GetNumEvents() samples
}

// LatencyStats is a small summary of a histogram's distribution. Field
// names echo the teacher's internal/metrics.LatencyStats shape, with
// ticks in place of a wall-clock unit.
type LatencyStats struct {
	Min, Max, Mean, StdDev int64
	P50, P90, P95, P99     int64
}

// Snapshot captures the probe's state.
func (p *Probe) Snapshot() Snapshot {
	return Snapshot{
		BeginCount:    p.begun,
		RunCount:      p.runs,
		PauseCount:    p.pauses,
		EndCount:      p.ended,
		FireCount:     p.fireCount,
		InterEventGap: summarize(p.gapHist),
		QueueDepth:    summarize(p.depthHist),
	}
}

func summarize(h *hdrhistogram.Histogram) LatencyStats {
	return LatencyStats{
		Min:    h.Min(),
		Max:    h.Max(),
		Mean:   int64(h.Mean()),
		StdDev: int64(h.StdDev()),
		P50:    h.ValueAtQuantile(50),
		P90:    h.ValueAtQuantile(90),
		P95:    h.ValueAtQuantile(95),
		P99:    h.ValueAtQuantile(99),
	}
}

func (p *Probe) recordDepth(n uint64) {
	v := int64(n)
	if v < minValue {
		v = minValue
	}
	p.depthHist.RecordValue(v)
}

func (p *Probe) recordFireAt(t chrono.TimePoint) {
	p.fireCount++
	if p.hasLast {
		gap := t.Diff(p.lastFire).Ticks()
		if gap < minValue {
			gap = minValue
		}
		p.gapHist.RecordValue(gap)
	}
	p.lastFire = t
	p.hasLast = true
}

// decorated is the scheduler.Scheduler wrapper installed by Probe.Wrap.
type decorated struct {
	inner scheduler.Scheduler
	probe *Probe
}

func (d *decorated) UseClock(c clock.Clock) error {
	return d.inner.UseClock(c)
}

func (d *decorated) ScheduleNow(sink event.Sink) (*event.Handle, error) {
	h, err := d.inner.ScheduleNow(sink)
	d.probe.recordDepth(d.inner.GetNumEvents())
	return h, err
}

func (d *decorated) ScheduleIn(dt chrono.Duration, sink event.Sink) (*event.Handle, error) {
	h, err := d.inner.ScheduleIn(dt, sink)
	d.probe.recordDepth(d.inner.GetNumEvents())
	return h, err
}

func (d *decorated) ScheduleAt(t chrono.TimePoint, sink event.Sink) (*event.Handle, error) {
	h, err := d.inner.ScheduleAt(t, sink)
	d.probe.recordDepth(d.inner.GetNumEvents())
	return h, err
}

func (d *decorated) GetNumEvents() uint64 { return d.inner.GetNumEvents() }

func (d *decorated) GetNextEvent() *event.Handle { return d.inner.GetNextEvent() }

func (d *decorated) FireAndRemoveNextEvent() {
	if h := d.inner.GetNextEvent(); h != nil {
		d.probe.recordFireAt(h.TimePoint())
	}
	d.inner.FireAndRemoveNextEvent()
	d.probe.recordDepth(d.inner.GetNumEvents())
}
