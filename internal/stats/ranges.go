package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/tidrapport/pkg/dateutil"
)

// ErrInvalidRange is returned when range inputs are not valid calendar dates
var ErrInvalidRange = errors.New("invalid range input")

// Ranges holds the inclusive day ranges used for period totals
type Ranges struct {
	Today dateutil.Range
	Week  dateutil.Range // real current week clamped to the selected month; may be empty
	Month dateutil.Range
	Year  dateutil.Range
}

// ComputeRanges derives period ranges from the browsed month and the real date.
// Today and week follow the real date; month and year follow the selected month.
// The week is clamped to the selected month, so browsing a month that does not
// contain the current week yields an empty week range.
func ComputeRanges(selectedMonth, today time.Time) (Ranges, error) {
	if selectedMonth.IsZero() {
		return Ranges{}, fmt.Errorf("%w: selected month is not set", ErrInvalidRange)
	}
	if today.IsZero() {
		return Ranges{}, fmt.Errorf("%w: today is not set", ErrInvalidRange)
	}

	// The selected month's location decides the calendar everything is compared in.
	loc := selectedMonth.Location()
	today = dateutil.StartOfDay(today.In(loc))

	month := dateutil.NewRange(dateutil.StartOfMonth(selectedMonth), dateutil.EndOfMonth(selectedMonth))
	week := dateutil.NewRange(dateutil.StartOfWeek(today), dateutil.EndOfWeek(today))

	return Ranges{
		Today: dateutil.NewRange(today, today),
		Week:  week.Clamp(month),
		Month: month,
		Year:  dateutil.NewRange(dateutil.StartOfYear(selectedMonth), dateutil.EndOfYear(selectedMonth)),
	}, nil
}

// ParseRanges is ComputeRanges for boundary strings.
// selectedMonth is YYYY-MM or YYYY-MM-DD, today is YYYY-MM-DD.
func ParseRanges(selectedMonth, today string, loc *time.Location) (Ranges, error) {
	month, err := dateutil.ParseMonth(selectedMonth, loc)
	if err != nil {
		return Ranges{}, fmt.Errorf("%w: selected month %q: %v", ErrInvalidRange, selectedMonth, err)
	}
	day, err := dateutil.ParseDate(today, loc)
	if err != nil {
		return Ranges{}, fmt.Errorf("%w: today %q: %v", ErrInvalidRange, today, err)
	}
	return ComputeRanges(month, day)
}

// Span returns the smallest range covering month, week and year.
// Today is left out so a past year does not stretch the span to the present.
func (r Ranges) Span() dateutil.Range {
	span := r.Month
	for _, part := range []dateutil.Range{r.Week, r.Year} {
		if part.Empty() {
			continue
		}
		if part.Start.Before(span.Start) {
			span.Start = part.Start
		}
		if part.End.After(span.End) {
			span.End = part.End
		}
	}
	return span
}

// Windows returns the disjoint ranges entries must be fetched for before
// calling Aggregate: the span, plus today when it falls outside it.
func (r Ranges) Windows() []dateutil.Range {
	span := r.Span()
	windows := []dateutil.Range{span}
	if !r.Today.Empty() && !span.Contains(r.Today.Start) {
		windows = append(windows, r.Today)
	}
	return windows
}
