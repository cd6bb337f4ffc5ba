// Package clock defines the minimal Clock contract the scheduler depends
// on, plus a standalone FixedClock implementation for exercising a
// Scheduler without a full Simulator.
package clock

import "github.com/Fuzzier/nsfx-sub003/chrono"

// Clock reports the current simulated time. sim.Simulator is the
// production implementation; FixedClock below is a minimal stand-in for
// unit tests that only need a settable "now".
type Clock interface {
	// Now returns the current simulated TimePoint.
	Now() chrono.TimePoint
}

// FixedClock is a manually-advanced Clock, useful for exercising a
// Scheduler implementation in isolation from a Simulator's run loop.
type FixedClock struct {
	now chrono.TimePoint
}

// NewFixedClock returns a FixedClock starting at the given TimePoint.
func NewFixedClock(start chrono.TimePoint) *FixedClock {
	return &FixedClock{now: start}
}

// Now returns the clock's current TimePoint.
func (c *FixedClock) Now() chrono.TimePoint { return c.now }

// Set moves the clock to an arbitrary TimePoint. Unlike a Simulator, a
// FixedClock does not enforce monotonicity; tests that need monotonicity
// guarantees should exercise sim.Simulator instead.
func (c *FixedClock) Set(t chrono.TimePoint) { c.now = t }

// Advance moves the clock forward by dt.
func (c *FixedClock) Advance(dt chrono.Duration) { c.now = c.now.Add(dt) }
