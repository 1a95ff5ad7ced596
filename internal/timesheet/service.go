// Package timesheet assembles month views, statistics and reports from a
// data source and a holiday provider.
package timesheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/tidrapport/internal/calendar"
	"github.com/username/tidrapport/internal/model"
	"github.com/username/tidrapport/internal/stats"
	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// Source provides clients and time entries
type Source interface {
	Clients(ctx context.Context) ([]model.Client, error)
	EntriesBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error)
}

// Options controls how months are presented
type Options struct {
	ShowWeekends bool
	Location     *time.Location
}

// Service builds timesheet views
type Service struct {
	source   Source
	holidays calendar.Provider
	opts     Options
	logger   *zap.Logger
}

// NewService creates a new timesheet service
func NewService(source Source, holidays calendar.Provider, opts Options, logger *zap.Logger) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Service{
		source:   source,
		holidays: holidays,
		opts:     opts,
		logger:   logger,
	}
}

// Location returns the time zone dates are interpreted in
func (s *Service) Location() *time.Location {
	return s.opts.Location
}

// fetch loads clients and the entries inside r
func (s *Service) fetch(ctx context.Context, r dateutil.Range) ([]model.Client, []model.TimeEntry, error) {
	clients, err := s.source.Clients(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load clients: %w", err)
	}
	entries, err := s.source.EntriesBetween(ctx, r.Start, r.End)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load entries %s: %w", r, err)
	}
	return clients, entries, nil
}

// Stats computes period totals and the month distribution.
// Today and week follow today; month and year follow selectedMonth.
func (s *Service) Stats(ctx context.Context, selectedMonth, today time.Time) (*Summary, error) {
	ranges, err := stats.ComputeRanges(selectedMonth.In(s.opts.Location), today)
	if err != nil {
		return nil, err
	}

	windows := ranges.Windows()
	clients, entries, err := s.fetch(ctx, windows[0])
	if err != nil {
		return nil, err
	}
	for _, w := range windows[1:] {
		extra, err := s.source.EntriesBetween(ctx, w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("failed to load entries %s: %w", w, err)
		}
		entries = append(entries, extra...)
	}

	result := stats.Aggregate(entries, ranges, clients)
	s.logDiagnostics(result.Diagnostics)

	s.logger.Info("Statistics computed",
		zap.String("month", ranges.Month.String()),
		zap.String("week", ranges.Week.String()),
		zap.String("month_hours", result.Totals.Month.String()),
		zap.Int("clients", len(result.Distribution)))

	return &Summary{Ranges: ranges, Result: result}, nil
}

// Holidays returns the provider's holidays for a year, ordered by date
func (s *Service) Holidays(ctx context.Context, year int) ([]calendar.Holiday, error) {
	if s.holidays == nil {
		return nil, nil
	}
	holidays, err := s.holidays.HolidaysForYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays for %d: %w", year, err)
	}
	return calendar.NewSet(holidays...).Sorted(), nil
}

func (s *Service) logDiagnostics(diagnostics []stats.Diagnostic) {
	for _, d := range diagnostics {
		s.logger.Warn("Entry diagnostic",
			zap.Stringer("kind", d.Kind),
			zap.String("entry_id", d.EntryID.String()),
			zap.String("client_id", d.ClientID.String()),
			zap.String("reason", d.Reason))
	}
}

// clientIndex maps client IDs to the first client carrying them
func clientIndex(clients []model.Client) map[model.FlexibleID]model.Client {
	index := make(map[model.FlexibleID]model.Client, len(clients))
	for _, c := range clients {
		if _, ok := index[c.ID]; !ok {
			index[c.ID] = c
		}
	}
	return index
}

// sortByHours orders hours descending, keeping the given order for ties
func sortByHours(hours []ClientHours) {
	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].Hours.GreaterThan(hours[j].Hours)
	})
}

// ClientHours is a client's summed hours within some period
type ClientHours struct {
	ClientID model.FlexibleID
	Name     string
	Color    string
	Hours    decimal.Decimal
}

// Summary is the result of Stats
type Summary struct {
	Ranges stats.Ranges
	stats.Result
}
