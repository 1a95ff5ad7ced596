package calendar

import (
	"context"
	"sort"
	"time"

	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// Holiday represents a single public holiday
type Holiday struct {
	Date time.Time
	Name string
}

// Provider returns public holidays for a year
type Provider interface {
	// HolidaysForYear returns every holiday of the given year.
	// An empty slice means no holidays are known for that year.
	HolidaysForYear(ctx context.Context, year int) ([]Holiday, error)
}

// Set is a lookup of holidays keyed by calendar date (YYYY-MM-DD)
type Set map[string]Holiday

// NewSet builds a Set from a list of holidays.
// When two holidays share a date the first one wins.
func NewSet(holidays ...Holiday) Set {
	set := make(Set, len(holidays))
	set.Add(holidays...)
	return set
}

// Add merges holidays into the set
func (s Set) Add(holidays ...Holiday) {
	for _, h := range holidays {
		key := dateutil.FormatDate(h.Date)
		if _, exists := s[key]; !exists {
			s[key] = h
		}
	}
}

// Lookup returns the holiday on the given date, if any
func (s Set) Lookup(date time.Time) (Holiday, bool) {
	h, ok := s[dateutil.FormatDate(date)]
	return h, ok
}

// Len returns the number of holidays in the set
func (s Set) Len() int {
	return len(s)
}

// Sorted returns holidays ordered by date
func (s Set) Sorted() []Holiday {
	holidays := make([]Holiday, 0, len(s))
	for _, h := range s {
		holidays = append(holidays, h)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// ForDates resolves holidays for every distinct year among dates.
// The provider is called once per year. A failing year is logged and treated
// as having no holidays, so the returned set is always usable.
func ForDates(ctx context.Context, provider Provider, dates []time.Time, logger *zap.Logger) Set {
	set := make(Set)
	if provider == nil {
		return set
	}

	seen := make(map[int]bool)
	for _, d := range dates {
		year := d.Year()
		if seen[year] {
			continue
		}
		seen[year] = true

		holidays, err := provider.HolidaysForYear(ctx, year)
		if err != nil {
			logger.Warn("Holiday lookup unavailable, continuing without holidays",
				zap.Int("year", year),
				zap.Error(err))
			continue
		}
		if len(holidays) == 0 {
			logger.Debug("No holidays known for year", zap.Int("year", year))
		}
		set.Add(holidays...)
	}

	return set
}
