package dateutil

import (
	"errors"
	"time"
)

// DateLayout is the calendar date format used at every boundary (yyyy-MM-dd)
const DateLayout = "2006-01-02"

// MonthLayout is the short month format (yyyy-MM)
const MonthLayout = "2006-01"

// ErrInvalidDateFormat is returned when a date string is not a valid calendar date
var ErrInvalidDateFormat = errors.New("date must be a valid calendar date in YYYY-MM-DD format")

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfWeek returns the Monday of the week for the given date
func StartOfWeek(date time.Time) time.Time {
	return StartOfDay(date.AddDate(0, 0, -MondayIndex(date.Weekday())))
}

// EndOfWeek returns the Sunday of the week for the given date
func EndOfWeek(date time.Time) time.Time {
	return StartOfWeek(date).AddDate(0, 0, 6)
}

// StartOfMonth returns the first day of the date's month
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}

// EndOfMonth returns the last day of the date's month
func EndOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, date.Location())
}

// StartOfYear returns January 1st of the date's year
func StartOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
}

// EndOfYear returns December 31st of the date's year
func EndOfYear(date time.Time) time.Time {
	return time.Date(date.Year(), time.December, 31, 0, 0, 0, 0, date.Location())
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MondayIndex maps a Sunday-first weekday to a Monday-first index (Monday=0, Sunday=6)
func MondayIndex(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}

// ISOWeek returns the ISO-8601 week number for the given date.
// The date is normalized to UTC midnight first so DST shifts never move it.
func ISOWeek(date time.Time) int {
	_, week := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string as a calendar day in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// ParseMonth parses YYYY-MM or YYYY-MM-DD and returns the first day of that month
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(MonthLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := ParseDate(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfMonth(t), nil
}

// AddMonths moves (year, month) by delta months, rolling over year boundaries
func AddMonths(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Today returns today's date (start of day) in loc
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Now().In(loc))
}
