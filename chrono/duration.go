// Package chrono provides the fixed-resolution time model used by the
// simulation kernel: a signed tick count (Duration) and an offset from a
// fixed epoch (TimePoint).
package chrono

import (
	"fmt"
	"math"
)

// TicksPerSecond is the compile-time-fixed resolution of a Duration tick.
// The default resolution is 1/10 of a nanosecond (1e9 ns/second * 10 ticks/ns).
// Changing this constant changes the meaning of every stored tick count and
// is an ABI-breaking change for any serialized Duration/TimePoint.
const TicksPerSecond = 10_000_000_000

const (
	ticksPerNanosecond  = TicksPerSecond / 1_000_000_000
	ticksPerMicrosecond = ticksPerNanosecond * 1_000
	ticksPerMillisecond = ticksPerMicrosecond * 1_000
	ticksPerSecond      = TicksPerSecond
	ticksPerMinute      = ticksPerSecond * 60
	ticksPerHour        = ticksPerMinute * 60
	ticksPerDay         = ticksPerHour * 24
)

// Duration is a signed count of fixed-resolution ticks. It represents a free
// length of time, not associated with any particular TimePoint.
type Duration int64

// Zero, MinDuration and MaxDuration are the representable bounds of Duration.
const (
	Zero        Duration = 0
	MinDuration Duration = math.MinInt64
	MaxDuration Duration = math.MaxInt64
)

// NanoSeconds, MicroSeconds, MilliSeconds, Seconds, Minutes, Hours and Days
// construct a Duration from a count of the named unit.
func NanoSeconds(n int64) Duration  { return Duration(n * ticksPerNanosecond) }
func MicroSeconds(n int64) Duration { return Duration(n * ticksPerMicrosecond) }
func MilliSeconds(n int64) Duration { return Duration(n * ticksPerMillisecond) }
func Seconds(n int64) Duration      { return Duration(n * ticksPerSecond) }
func Minutes(n int64) Duration      { return Duration(n * ticksPerMinute) }
func Hours(n int64) Duration        { return Duration(n * ticksPerHour) }
func Days(n int64) Duration         { return Duration(n * ticksPerDay) }

// NewDuration builds a Duration from composite fields, carrying each into
// the tick count. Negative fields are allowed and combine the same way
// positive ones do (NewDuration(0, 0, 0, 0, 0, -1) is one tick negative).
// The trailing ticks field covers whatever a days/hours/minutes/seconds/
// millis breakdown leaves over, including microseconds and nanoseconds:
// pass ticks = micros*ticksPerMicrosecond + nanos*ticksPerNanosecond (or
// use MicroSeconds/NanoSeconds directly and Add the results) rather than
// a separate micro/nano parameter pair.
func NewDuration(days, hours, minutes, seconds, millis, ticks int64) Duration {
	return Duration(days*ticksPerDay +
		hours*ticksPerHour +
		minutes*ticksPerMinute +
		seconds*ticksPerSecond +
		millis*ticksPerMillisecond +
		ticks)
}

// Ticks returns the raw tick count.
func (d Duration) Ticks() int64 { return int64(d) }

// ToDouble returns the duration in seconds as a floating point value. This
// is informational only; it is not used for any ordering or arithmetic.
func (d Duration) ToDouble() float64 {
	return float64(d) / float64(ticksPerSecond)
}

// Add, Sub and Neg implement Duration arithmetic. Overflow is not checked:
// per the kernel's contract, wraparound is a programmer error, not a
// recoverable condition.
func (d Duration) Add(other Duration) Duration { return d + other }
func (d Duration) Sub(other Duration) Duration { return d - other }
func (d Duration) Neg() Duration               { return -d }

// Mul scales a Duration by an integer count.
func (d Duration) Mul(n int64) Duration { return Duration(int64(d) * n) }

// DivInt divides a Duration by an integer, discarding the remainder.
func (d Duration) DivInt(n int64) Duration { return Duration(int64(d) / n) }

// Mod returns the remainder of d divided by other.
func (d Duration) Mod(other Duration) Duration { return d % other }

// Div returns the dimensionless integer quotient of two durations.
func (d Duration) Div(other Duration) int64 { return int64(d) / int64(other) }

// Less, LessOrEqual, Equal, Greater and GreaterOrEqual give Duration a total
// order consistent with the underlying tick count.
func (d Duration) Less(other Duration) bool           { return d < other }
func (d Duration) LessOrEqual(other Duration) bool    { return d <= other }
func (d Duration) Equal(other Duration) bool          { return d == other }
func (d Duration) Greater(other Duration) bool        { return d > other }
func (d Duration) GreaterOrEqual(other Duration) bool { return d >= other }

// String renders "DD days HH:MM:SS.mmm.uuu.nnn". The "DD days " prefix is
// omitted when the duration spans less than a day. A leading "-" marks a
// negative duration; the fields below it are printed for its magnitude.
func (d Duration) String() string {
	neg := d < 0
	ticks := int64(d)
	if neg {
		ticks = -ticks
	}

	days := ticks / ticksPerDay
	ticks %= ticksPerDay
	hours := ticks / ticksPerHour
	ticks %= ticksPerHour
	minutes := ticks / ticksPerMinute
	ticks %= ticksPerMinute
	seconds := ticks / ticksPerSecond
	ticks %= ticksPerSecond
	millis := ticks / ticksPerMillisecond
	ticks %= ticksPerMillisecond
	micros := ticks / ticksPerMicrosecond
	ticks %= ticksPerMicrosecond
	nanos := ticks / ticksPerNanosecond

	sign := ""
	if neg {
		sign = "-"
	}

	if days > 0 {
		return fmt.Sprintf("%s%d days %02d:%02d:%02d.%03d.%03d.%03d",
			sign, days, hours, minutes, seconds, millis, micros, nanos)
	}
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d.%03d.%03d",
		sign, hours, minutes, seconds, millis, micros, nanos)
}
