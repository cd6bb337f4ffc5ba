// Package simerr defines the typed error kinds raised by the simulation
// kernel (scheduler, simulator and timer), so callers can distinguish them
// with errors.As instead of matching on message text.
package simerr

import (
	"fmt"

	"github.com/Fuzzier/nsfx-sub003/chrono"
)

// Kind identifies which precondition or contract a kernel operation
// violated.
type Kind int

const (
	// Uninitialized means an operation that requires a prior binding
	// (UseClock, UseScheduler) was invoked before that binding happened.
	Uninitialized Kind = iota
	// InvalidPointer means a required collaborator (a sink, a clock, a
	// scheduler) was nil.
	InvalidPointer
	// InvalidArgument means an argument violated a stated precondition,
	// e.g. ScheduleAt given a time before the current time, or a timer
	// given a non-positive period.
	InvalidArgument
	// IllegalMethodCall means a one-shot binding was attempted twice, or
	// a lifecycle method was re-entered illegally.
	IllegalMethodCall
	// NoScheduledEvent means a run method was invoked on an empty
	// scheduler in a context that treats this as an error rather than a
	// no-op.
	NoScheduledEvent
)

func (k Kind) String() string {
	switch k {
	case Uninitialized:
		return "Uninitialized"
	case InvalidPointer:
		return "InvalidPointer"
	case InvalidArgument:
		return "InvalidArgument"
	case IllegalMethodCall:
		return "IllegalMethodCall"
	case NoScheduledEvent:
		return "NoScheduledEvent"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type raised by the kernel. InvalidArgument
// errors arising from ScheduleAt carry Now and At so a caller can report
// both the current time and the offending one without re-deriving either.
type Error struct {
	Kind    Kind
	Message string

	HasTimes bool
	Now      chrono.TimePoint
	At       chrono.TimePoint
}

func (e *Error) Error() string {
	if e.HasTimes {
		return fmt.Sprintf("%s: %s (now=%s, at=%s)", e.Kind, e.Message, e.Now, e.At)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is makes errors.Is(err, target) report true when target is a *Error of
// the same Kind, whatever its message. Kind values themselves do not
// implement error; to test against a Kind directly use the package-level
// Is below.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newErr(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewUninitialized reports that a required binding has not happened yet.
func NewUninitialized(message string) *Error {
	return newErr(Uninitialized, message)
}

// NewInvalidPointer reports that a required collaborator was nil.
func NewInvalidPointer(message string) *Error {
	return newErr(InvalidPointer, message)
}

// NewInvalidArgument reports a plain argument violation with no attached
// time context.
func NewInvalidArgument(message string) *Error {
	return newErr(InvalidArgument, message)
}

// NewScheduleInPast reports an InvalidArgument specifically for
// ScheduleAt(t) where t precedes the clock's current time, attaching both
// as structured fields per spec.
func NewScheduleInPast(now, at chrono.TimePoint) *Error {
	return &Error{
		Kind:     InvalidArgument,
		Message:  "cannot schedule an event before the current time",
		HasTimes: true,
		Now:      now,
		At:       at,
	}
}

// NewIllegalMethodCall reports a one-shot binding re-attempted, or a
// forbidden lifecycle re-entrancy.
func NewIllegalMethodCall(message string) *Error {
	return newErr(IllegalMethodCall, message)
}

// NewNoScheduledEvent reports a run method invoked on an empty scheduler in
// a context that treats this as an error.
func NewNoScheduledEvent(message string) *Error {
	return newErr(NoScheduledEvent, message)
}

// Is reports whether err is a *Error of the given kind. It is the intended
// way for callers to branch on kind: simerr.Is(err, simerr.Uninitialized).
func Is(err error, kind Kind) bool {
	var e *Error
	if ae, ok := err.(*Error); ok {
		e = ae
	} else {
		return false
	}
	return e.Kind == kind
}
