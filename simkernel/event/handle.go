package event

import "github.com/Fuzzier/nsfx-sub003/chrono"

// State is one position in the Handle state machine: Pending, Running,
// Fired or Cancelled. Pending is the only state from which Cancel has an
// effect, and the only state from which Fire invokes the sink; Fire on a
// Cancelled handle only moves it to Fired, and is a no-op otherwise.
type State int

const (
	Pending State = iota
	Running
	Fired
	Cancelled
)

func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Running:
		return "Running"
	case Fired:
		return "Fired"
	case Cancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Handle is a scheduled event: its identity, its firing time, the sink to
// invoke, and its place in the Pending/Running/Fired/Cancelled state
// machine. A Scheduler is the only legitimate factory for a Handle; only a
// Scheduler may call Fire.
//
// Handle is not safe for concurrent use. The kernel's concurrency model is
// single-threaded cooperative dispatch (see simkernel/sim); a Handle is
// only ever touched from the thread driving the owning Simulator.
type Handle struct {
	id    Id
	t     chrono.TimePoint
	sink  Sink
	state State
}

// NewHandle constructs a Pending Handle for the given id, firing time and
// sink. Schedulers are the intended (and only sanctioned) caller.
func NewHandle(id Id, t chrono.TimePoint, sink Sink) *Handle {
	return &Handle{id: id, t: t, sink: sink, state: Pending}
}

// Id returns the event id assigned at scheduling time. Stable for the
// lifetime of the handle.
func (h *Handle) Id() Id { return h.id }

// TimePoint returns the scheduled firing time.
func (h *Handle) TimePoint() chrono.TimePoint { return h.t }

// State returns the current state.
func (h *Handle) State() State { return h.state }

// IsPending reports whether the handle is still awaiting dispatch.
func (h *Handle) IsPending() bool { return h.state == Pending }

// IsRunning reports whether the handle's sink is currently executing.
func (h *Handle) IsRunning() bool { return h.state == Running }

// IsValid reports whether the handle still owns a sink, i.e. it has not
// yet fired or been cancelled.
func (h *Handle) IsValid() bool { return h.state == Pending || h.state == Running }

// Cancel moves a Pending handle to Cancelled and releases the sink
// reference so it can be garbage collected even if the scheduler still
// holds the handle. Idempotent; never returns an error. Calling Cancel on
// a Running, Fired or already-Cancelled handle has no effect.
func (h *Handle) Cancel() {
	if h.state != Pending {
		return
	}
	h.state = Cancelled
	h.sink = nil
}

// Fire transitions Pending -> Running -> Fired, invoking the sink exactly
// once, then releases the sink reference. If the handle was Cancelled
// before Fire is called, Fire is a no-op that still transitions the handle
// to Fired, so the scheduler sees a uniform terminal state either way.
// Only a Scheduler is expected to call Fire.
func (h *Handle) Fire() {
	if h.state == Cancelled {
		h.state = Fired
		return
	}
	if h.state != Pending {
		return
	}
	h.state = Running
	sink := h.sink
	h.sink = nil
	if sink != nil {
		sink()
	}
	h.state = Fired
}

// Less implements the strict weak ordering schedulers must honor:
// earlier TimePoint first, ties broken by ascending Id (FIFO for
// simultaneously-scheduled events).
func Less(a, b *Handle) bool {
	if !a.t.Equal(b.t) {
		return a.t.Before(b.t)
	}
	return a.id < b.id
}
