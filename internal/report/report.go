// Package report renders a probe.Snapshot as either a console summary or
// a JSON document, for the CLI driver's run/batch subcommands.
package report

import (
	"time"

	"github.com/Fuzzier/nsfx-sub003/internal/probe"
)

// Report is the complete, renderable result of one simulation run.
type Report struct {
	Version string  `json:"version"`
	RunInfo RunInfo `json:"run_info"`
	Counts  Counts  `json:"counts"`
	Gap     Stats   `json:"inter_event_gap_ticks"`
	Depth   Stats   `json:"queue_depth"`
}

// RunInfo carries the metadata around a run that the snapshot itself
// does not know about: which scenario, which scheduler implementation,
// and wall-clock bookkeeping for the console footer.
type RunInfo struct {
	Scenario            string        `json:"scenario"`
	SchedulerImpl       string        `json:"scheduler_implementation"`
	TickResolutionLabel string        `json:"tick_resolution_label"`
	StartedAt           time.Time     `json:"started_at"`
	Elapsed             time.Duration `json:"elapsed"`
}

// Counts mirrors a probe.Snapshot's lifecycle tallies.
type Counts struct {
	Begin int   `json:"begin"`
	Run   int   `json:"run"`
	Pause int   `json:"pause"`
	End   int   `json:"end"`
	Fired int64 `json:"fired"`
}

// Stats is a rendering-friendly copy of probe.LatencyStats.
type Stats struct {
	Min, Max, Mean, StdDev int64
	P50, P90, P95, P99     int64
}

// Generate builds a Report from run metadata and a probe snapshot.
func Generate(info RunInfo, snap probe.Snapshot) *Report {
	return &Report{
		Version: "1.0",
		RunInfo: info,
		Counts: Counts{
			Begin: snap.BeginCount,
			Run:   snap.RunCount,
			Pause: snap.PauseCount,
			End:   snap.EndCount,
			Fired: snap.FireCount,
		},
		Gap:   fromProbeStats(snap.InterEventGap),
		Depth: fromProbeStats(snap.QueueDepth),
	}
}

func fromProbeStats(s probe.LatencyStats) Stats {
	return Stats{
		Min: s.Min, Max: s.Max, Mean: s.Mean, StdDev: s.StdDev,
		P50: s.P50, P90: s.P90, P95: s.P95, P99: s.P99,
	}
}

// String returns a one-line human-readable summary.
func (r *Report) String() string {
	return r.RunInfo.Scenario + ": " + r.RunInfo.SchedulerImpl + " scheduler, " +
		formatNumber(r.Counts.Fired) + " events fired"
}
