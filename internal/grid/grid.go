// Package grid builds the month calendar grid and classifies its days.
package grid

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/tidrapport/pkg/dateutil"
)

// ErrInvalidMonth is returned for a month outside January..December
var ErrInvalidMonth = errors.New("month must be between 1 and 12")

// CellKind distinguishes day cells from week number cells
type CellKind int

const (
	CellDay CellKind = iota + 1
	CellWeekNumber
)

// Cell is one slot of the rendered grid: either a day or a row's week number
type Cell struct {
	Kind       CellKind
	Date       time.Time // set for CellDay
	WeekNumber int       // set for CellWeekNumber
}

// IsDay reports whether the cell holds a date
func (c Cell) IsDay() bool {
	return c.Kind == CellDay
}

// Row is one grid week
type Row struct {
	Week int
	Days []time.Time
}

// Build returns the grid for the month in the local time zone.
// See BuildIn.
func Build(year int, month time.Month, showWeekends bool) ([]Cell, error) {
	return BuildIn(year, month, showWeekends, time.Local)
}

// BuildIn returns the ordered cells for a full-week grid of the month.
// Each row starts with a week number cell followed by 7 day cells, or 5 when
// weekends are hidden. Leading and trailing days are borrowed from the
// adjacent months so every row is a complete Monday..Sunday week.
func BuildIn(year int, month time.Month, showWeekends bool, loc *time.Location) ([]Cell, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidMonth, month)
	}
	if loc == nil {
		loc = time.Local
	}

	days := monthDays(year, month, loc)
	if !showWeekends {
		// Filter only after padding so the padding is always whole weeks.
		days = withoutWeekends(days)
	}

	perRow := 7
	if !showWeekends {
		perRow = 5
	}

	cells := make([]Cell, 0, len(days)+len(days)/perRow)
	for i := 0; i < len(days); i += perRow {
		row := days[i : i+perRow]
		cells = append(cells, Cell{Kind: CellWeekNumber, WeekNumber: dateutil.ISOWeek(row[0])})
		for _, d := range row {
			cells = append(cells, Cell{Kind: CellDay, Date: d})
		}
	}

	return cells, nil
}

// monthDays returns the month's days padded to whole Monday..Sunday weeks
func monthDays(year int, month time.Month, loc *time.Location) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := dateutil.DaysInMonth(year, month)
	lead := dateutil.MondayIndex(first.Weekday())
	trail := (7 - (lead+daysInMonth)%7) % 7

	days := make([]time.Time, 0, lead+daysInMonth+trail)
	// Day 0 and below roll back into the previous month.
	for i := lead; i > 0; i-- {
		days = append(days, time.Date(year, month, 1-i, 0, 0, 0, 0, loc))
	}
	for d := 1; d <= daysInMonth+trail; d++ {
		days = append(days, time.Date(year, month, d, 0, 0, 0, 0, loc))
	}
	return days
}

func withoutWeekends(days []time.Time) []time.Time {
	filtered := make([]time.Time, 0, len(days))
	for _, d := range days {
		if !dateutil.IsWeekend(d) {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Days returns the dates of all day cells in order
func Days(cells []Cell) []time.Time {
	days := make([]time.Time, 0, len(cells))
	for _, c := range cells {
		if c.IsDay() {
			days = append(days, c.Date)
		}
	}
	return days
}

// Rows regroups a cell sequence into weeks
func Rows(cells []Cell) []Row {
	var rows []Row
	for _, c := range cells {
		switch c.Kind {
		case CellWeekNumber:
			rows = append(rows, Row{Week: c.WeekNumber})
		case CellDay:
			if len(rows) == 0 {
				rows = append(rows, Row{Week: dateutil.ISOWeek(c.Date)})
			}
			last := &rows[len(rows)-1]
			last.Days = append(last.Days, c.Date)
		}
	}
	return rows
}
