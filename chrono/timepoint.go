package chrono

// TimePoint is a Duration measured from the fixed epoch (the zero time
// point). It supports addition/subtraction of a Duration and the
// difference of two TimePoints, but never the sum of two TimePoints.
type TimePoint struct {
	dt Duration
}

// Epoch, MinTimePoint and MaxTimePoint are the representable bounds.
func Epoch() TimePoint        { return TimePoint{} }
func MinTimePoint() TimePoint { return TimePoint{dt: MinDuration} }
func MaxTimePoint() TimePoint { return TimePoint{dt: MaxDuration} }

// NewTimePoint builds a TimePoint from its offset from the epoch.
func NewTimePoint(dt Duration) TimePoint { return TimePoint{dt: dt} }

// Duration returns the offset from the epoch.
func (t TimePoint) Duration() Duration { return t.dt }

// Add returns t shifted forward by dt.
func (t TimePoint) Add(dt Duration) TimePoint { return TimePoint{dt: t.dt + dt} }

// Sub returns t shifted backward by dt.
func (t TimePoint) Sub(dt Duration) TimePoint { return TimePoint{dt: t.dt - dt} }

// Diff returns the duration from other to t (t - other).
func (t TimePoint) Diff(other TimePoint) Duration { return t.dt - other.dt }

// Before, After, Equal, BeforeOrEqual and AfterOrEqual compare two
// TimePoints by their underlying Duration.
func (t TimePoint) Before(other TimePoint) bool        { return t.dt < other.dt }
func (t TimePoint) After(other TimePoint) bool         { return t.dt > other.dt }
func (t TimePoint) Equal(other TimePoint) bool         { return t.dt == other.dt }
func (t TimePoint) BeforeOrEqual(other TimePoint) bool { return t.dt <= other.dt }
func (t TimePoint) AfterOrEqual(other TimePoint) bool  { return t.dt >= other.dt }

// String renders the offset from the epoch using Duration's formatter.
func (t TimePoint) String() string { return t.dt.String() }
