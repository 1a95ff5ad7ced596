package dateutil

import "time"

// Range is an inclusive range of calendar days.
// A range whose Start is after its End is empty.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange creates a range from two dates, truncating both to the day
func NewRange(start, end time.Time) Range {
	return Range{Start: StartOfDay(start), End: StartOfDay(end)}
}

// Empty reports whether the range contains no days
func (r Range) Empty() bool {
	return r.Start.After(r.End)
}

// Contains reports whether date falls on a day inside the range
func (r Range) Contains(date time.Time) bool {
	if r.Empty() {
		return false
	}
	d := StartOfDay(date)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Clamp restricts the range so it does not extend outside bounds.
// The result may be empty.
func (r Range) Clamp(bounds Range) Range {
	clamped := r
	if clamped.Start.Before(bounds.Start) {
		clamped.Start = bounds.Start
	}
	if clamped.End.After(bounds.End) {
		clamped.End = bounds.End
	}
	return clamped
}

// Days returns the number of days in the range (0 when empty)
func (r Range) Days() int {
	if r.Empty() {
		return 0
	}
	days := 0
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

// String formats the range as "YYYY-MM-DD..YYYY-MM-DD"
func (r Range) String() string {
	return FormatDate(r.Start) + ".." + FormatDate(r.End)
}
