// Package scenario loads a YAML scenario file describing a fixed set of
// one-shot events and periodic timers to submit to a fresh Simulator,
// and an optional run-until bound.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Fuzzier/nsfx-sub003/chrono"
)

// Scenario is the in-memory, validated form of a scenario file.
type Scenario struct {
	Name     string
	Events   []Event
	Timers   []Timer
	RunUntil *chrono.Duration // nil means run to completion
}

// Event is a one-shot event fired at a fixed offset from the epoch.
type Event struct {
	Name string
	At   chrono.Duration
}

// Timer is a periodic timer: the first fire at Start, then every Period
// thereafter, stopping after Count fires if Count > 0.
type Timer struct {
	Name   string
	Start  chrono.Duration
	Period chrono.Duration
	Count  int // 0 means unbounded (runs until the simulator stops)
}

// yamlFile mirrors the on-disk shape.
type yamlFile struct {
	Name   string       `yaml:"name"`
	Events []yamlEvent  `yaml:"events"`
	Timers []yamlTimer  `yaml:"timers"`
	Run    string       `yaml:"run_until"`
}

type yamlEvent struct {
	Name string `yaml:"name"`
	At   string `yaml:"at"`
}

type yamlTimer struct {
	Name   string `yaml:"name"`
	Start  string `yaml:"start"`
	Period string `yaml:"period"`
	Count  int    `yaml:"count"`
}

// LoadFile reads and validates a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return Load(data)
}

// Load parses and validates scenario YAML data.
func Load(data []byte) (*Scenario, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}

	sc := &Scenario{Name: yf.Name}

	for i, ye := range yf.Events {
		if ye.Name == "" {
			return nil, fmt.Errorf("event %d: name is required", i)
		}
		at, err := parseDuration(ye.At)
		if err != nil {
			return nil, fmt.Errorf("event %q: at: %w", ye.Name, err)
		}
		if at.Less(chrono.Zero) {
			return nil, fmt.Errorf("event %q: at must be non-negative", ye.Name)
		}
		sc.Events = append(sc.Events, Event{Name: ye.Name, At: at})
	}

	for i, yt := range yf.Timers {
		if yt.Name == "" {
			return nil, fmt.Errorf("timer %d: name is required", i)
		}
		start, err := parseDuration(yt.Start)
		if err != nil {
			return nil, fmt.Errorf("timer %q: start: %w", yt.Name, err)
		}
		period, err := parseDuration(yt.Period)
		if err != nil {
			return nil, fmt.Errorf("timer %q: period: %w", yt.Name, err)
		}
		if !period.Greater(chrono.Zero) {
			return nil, fmt.Errorf("timer %q: period must be positive", yt.Name)
		}
		if yt.Count < 0 {
			return nil, fmt.Errorf("timer %q: count must be non-negative", yt.Name)
		}
		sc.Timers = append(sc.Timers, Timer{
			Name:   yt.Name,
			Start:  start,
			Period: period,
			Count:  yt.Count,
		})
	}

	if yf.Run != "" {
		d, err := parseDuration(yf.Run)
		if err != nil {
			return nil, fmt.Errorf("run_until: %w", err)
		}
		sc.RunUntil = &d
	}

	if sc.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if len(sc.Events) == 0 && len(sc.Timers) == 0 {
		return nil, fmt.Errorf("scenario %q: at least one event or timer is required", sc.Name)
	}

	return sc, nil
}

// parseDuration accepts a plain number of seconds ("10", "1.5") or a
// number with one of the suffixes s, ms, us, ns, m or h ("1.5s", "250ms",
// "2h"); it is intentionally small and does not use the full
// chrono.Duration field-by-field constructor.
func parseDuration(s string) (chrono.Duration, error) {
	if s == "" {
		return chrono.Zero, nil
	}
	var value float64
	var unit string
	n, err := fmt.Sscanf(s, "%f%s", &value, &unit)
	if n < 1 || (err != nil && n == 0) {
		return chrono.Zero, fmt.Errorf("invalid duration %q", s)
	}
	switch unit {
	case "", "s":
		return chrono.Duration(value * float64(chrono.Seconds(1))), nil
	case "ms":
		return chrono.Duration(value * float64(chrono.MilliSeconds(1))), nil
	case "us":
		return chrono.Duration(value * float64(chrono.MicroSeconds(1))), nil
	case "ns":
		return chrono.Duration(value * float64(chrono.NanoSeconds(1))), nil
	case "m":
		return chrono.Duration(value * float64(chrono.Minutes(1))), nil
	case "h":
		return chrono.Duration(value * float64(chrono.Hours(1))), nil
	default:
		return chrono.Zero, fmt.Errorf("invalid duration %q: unrecognized unit %q", s, unit)
	}
}
