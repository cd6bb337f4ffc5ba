// Package event defines the event sink type and the event handle state
// machine shared by every scheduler implementation.
package event

// Sink is a caller-supplied nullary callback to be fired at a scheduled
// time. Schedulers invoke a Sink exactly once, when the owning Handle
// fires.
type Sink func()

// Id is a per-scheduler monotonically increasing identifier
// assigned at scheduling time. Id is the tie-breaker for events scheduled
// at the same TimePoint: lower Id fires first, which gives FIFO ordering
// among simultaneous events.
type Id uint64
