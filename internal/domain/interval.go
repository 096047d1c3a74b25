package domain

import "time"

// Interval represents a half-open time interval [Start, End)
// All interval comparisons in the system use these semantics, so a meeting
// ending exactly when another begins is not a conflict
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval creates an interval [start, end)
func NewInterval(start, end time.Time) Interval {
	return Interval{Start: start, End: end}
}

// Duration returns the length of the interval
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsEmpty returns true for zero-length or inverted intervals
func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}

// Overlaps returns true if the two half-open intervals share at least one instant
// Strict inequalities: adjacent intervals do not overlap, empty intervals
// overlap nothing
func (i Interval) Overlaps(other Interval) bool {
	if i.IsEmpty() || other.IsEmpty() {
		return false
	}
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains returns true if other lies entirely within the interval
func (i Interval) Contains(other Interval) bool {
	return !other.Start.Before(i.Start) && !other.End.After(i.End)
}

// ContainsInstant returns true if t lies within [Start, End)
func (i Interval) ContainsInstant(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Expand grows the interval by before minutes on the left and after minutes
// on the right; used for buffer application around busy intervals
func (i Interval) Expand(before, after time.Duration) Interval {
	return Interval{
		Start: i.Start.Add(-before),
		End:   i.End.Add(after),
	}
}

// OverlapsAny returns true if the interval overlaps at least one of the given intervals
func (i Interval) OverlapsAny(intervals []Interval) bool {
	for _, other := range intervals {
		if i.Overlaps(other) {
			return true
		}
	}
	return false
}
