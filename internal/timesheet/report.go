package timesheet

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/tidrapport/internal/model"
	"github.com/username/tidrapport/internal/stats"
	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// ReportRow is one exported time entry
type ReportRow struct {
	Date        time.Time
	ClientID    model.FlexibleID
	ClientName  string
	Hours       decimal.Decimal
	Description string
}

// Report holds the export data for one month
type Report struct {
	Month       dateutil.Range
	Rows        []ReportRow   // ordered by date
	Totals      []ClientHours // hours descending
	Total       decimal.Decimal
	Diagnostics []stats.Diagnostic
}

// Report collects every valid entry of the month containing selectedMonth
// together with per-client and overall totals. Entries of unknown clients
// are named by their client ID.
func (s *Service) Report(ctx context.Context, selectedMonth time.Time) (*Report, error) {
	selectedMonth = selectedMonth.In(s.opts.Location)
	month := dateutil.NewRange(dateutil.StartOfMonth(selectedMonth), dateutil.EndOfMonth(selectedMonth))

	clients, entries, err := s.fetch(ctx, month)
	if err != nil {
		return nil, err
	}
	index := clientIndex(clients)

	report := &Report{Month: month, Total: decimal.Zero}
	totals := make(map[model.FlexibleID]int)

	for _, e := range entries {
		date, hours, reason := stats.ParseEntry(e, s.opts.Location)
		if reason != "" {
			report.Diagnostics = append(report.Diagnostics, stats.Diagnostic{
				Kind:     stats.InvalidEntry,
				EntryID:  e.ID,
				ClientID: e.ClientID,
				Reason:   reason,
			})
			continue
		}
		if !month.Contains(date) {
			continue
		}

		name := e.ClientID.String()
		color := ""
		if c, ok := index[e.ClientID]; ok {
			name = c.Name
			color = c.Color
		} else {
			report.Diagnostics = append(report.Diagnostics, stats.Diagnostic{
				Kind:     stats.UnknownClient,
				EntryID:  e.ID,
				ClientID: e.ClientID,
				Reason:   "client not found",
			})
		}

		report.Rows = append(report.Rows, ReportRow{
			Date:        date,
			ClientID:    e.ClientID,
			ClientName:  name,
			Hours:       hours,
			Description: e.DescriptionText(),
		})
		report.Total = report.Total.Add(hours)

		if i, ok := totals[e.ClientID]; ok {
			report.Totals[i].Hours = report.Totals[i].Hours.Add(hours)
		} else {
			totals[e.ClientID] = len(report.Totals)
			report.Totals = append(report.Totals, ClientHours{
				ClientID: e.ClientID,
				Name:     name,
				Color:    color,
				Hours:    hours,
			})
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Date.Before(report.Rows[j].Date)
	})
	sortByHours(report.Totals)
	s.logDiagnostics(report.Diagnostics)

	s.logger.Info("Report built",
		zap.String("month", month.String()),
		zap.Int("rows", len(report.Rows)),
		zap.String("total_hours", report.Total.String()))

	return report, nil
}
