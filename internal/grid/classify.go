package grid

import (
	"time"

	"github.com/username/tidrapport/internal/calendar"
	"github.com/username/tidrapport/pkg/dateutil"
)

// DisplayClass is the single style a day cell gets when only one may apply
type DisplayClass int

const (
	DisplayNormal DisplayClass = iota
	DisplayMuted               // weekend or outside the viewed month
	DisplayToday
	DisplayHoliday
)

// String returns the class name
func (d DisplayClass) String() string {
	switch d {
	case DisplayHoliday:
		return "holiday"
	case DisplayToday:
		return "today"
	case DisplayMuted:
		return "muted"
	default:
		return "normal"
	}
}

// DayClass describes how a date relates to today, the viewed month and holidays
type DayClass struct {
	IsToday        bool
	IsHoliday      bool
	HolidayName    string
	IsWeekend      bool
	IsCurrentMonth bool
}

// Classify classifies date against today, the viewed (year, month) and the holiday set.
// Out-of-month days are only flagged; their entries still count toward their own month.
func Classify(date, today time.Time, year int, month time.Month, holidays calendar.Set) DayClass {
	class := DayClass{
		IsToday:        dateutil.IsSameDay(date, today),
		IsWeekend:      dateutil.IsWeekend(date),
		IsCurrentMonth: date.Month() == month && date.Year() == year,
	}

	if h, ok := holidays.Lookup(date); ok {
		class.IsHoliday = true
		class.HolidayName = h.Name
	}

	return class
}

// Display resolves the class precedence: holiday > today > muted > normal.
// A holiday on a weekend is still styled as a holiday.
func (c DayClass) Display() DisplayClass {
	switch {
	case c.IsHoliday:
		return DisplayHoliday
	case c.IsToday:
		return DisplayToday
	case c.IsWeekend || !c.IsCurrentMonth:
		return DisplayMuted
	default:
		return DisplayNormal
	}
}
