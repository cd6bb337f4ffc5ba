package runner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Fuzzier/nsfx-sub003/internal/logging"
	"github.com/Fuzzier/nsfx-sub003/internal/scenario"
)

func TestRun_ThreeEventOrder(t *testing.T) {
	sc, err := scenario.Load([]byte(`
name: three-event-order
events:
  - name: A
    at: 1s
  - name: B
    at: 2s
  - name: C
    at: 3s
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res, err := Run(sc, "heap", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(res.Fired) != len(want) {
		t.Fatalf("Fired = %v, want %v", res.Fired, want)
	}
	for i, name := range want {
		if res.Fired[i] != name {
			t.Errorf("Fired[%d] = %q, want %q", i, res.Fired[i], name)
		}
	}
	if res.Snapshot.FireCount != 3 {
		t.Errorf("FireCount = %d, want 3", res.Snapshot.FireCount)
	}
}

func TestRun_TimerWithCountAndRunUntil(t *testing.T) {
	sc, err := scenario.Load([]byte(`
name: heartbeat
timers:
  - name: tick
    start: 1s
    period: 1s
    count: 3
run_until: 10s
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res, err := Run(sc, "list", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Fired) != 3 {
		t.Fatalf("Fired = %v, want 3 ticks", res.Fired)
	}
	for _, name := range res.Fired {
		if name != "tick" {
			t.Errorf("Fired entry = %q, want tick", name)
		}
	}
}

func TestRun_UnboundedTimerRequiresRunUntil(t *testing.T) {
	sc, err := scenario.Load([]byte(`
name: unbounded
timers:
  - name: tick
    start: 1s
    period: 1s
run_until: 5s
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	res, err := Run(sc, "set", nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Fired) != 5 {
		t.Fatalf("Fired = %v, want 5 ticks within the bound", res.Fired)
	}
}

func TestRun_UnknownSchedulerRejected(t *testing.T) {
	sc, err := scenario.Load([]byte(`
name: x
events:
  - name: A
    at: 1s
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := Run(sc, "bogus", nil); err == nil {
		t.Error("expected error for unknown scheduler implementation")
	}
}

func TestRun_LogsLifecycleTransitionsAndSchedulerBinding(t *testing.T) {
	sc, err := scenario.Load([]byte(`
name: logged
events:
  - name: A
    at: 1s
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var buf bytes.Buffer
	log := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &buf})

	if _, err := Run(sc, "heap", &log); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"scheduler bound", "\"message\":\"begin\"", "\"message\":\"run\"", "\"message\":\"pause\"", "\"message\":\"end\""} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestNewScheduler_AllImplementations(t *testing.T) {
	for _, impl := range []string{"list", "heap", "set"} {
		if _, err := NewScheduler(impl); err != nil {
			t.Errorf("NewScheduler(%q): %v", impl, err)
		}
	}
}
