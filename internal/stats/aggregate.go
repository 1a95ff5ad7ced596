// Package stats computes period ranges and hour totals from time entries.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/tidrapport/internal/model"
	"github.com/username/tidrapport/pkg/dateutil"
)

// PeriodTotals holds summed hours per period
type PeriodTotals struct {
	Today decimal.Decimal
	Week  decimal.Decimal
	Month decimal.Decimal
	Year  decimal.Decimal
}

// ClientShare is one client's slice of the selected month
type ClientShare struct {
	ClientID   model.FlexibleID
	Name       string
	Color      string
	Hours      decimal.Decimal
	Percentage float64 // of the month total, 0 when the month total is 0
}

// DiagnosticKind classifies a data-quality problem found while aggregating
type DiagnosticKind int

const (
	// InvalidEntry entries are excluded from every sum
	InvalidEntry DiagnosticKind = iota + 1
	// UnknownClient entries count toward totals but not the distribution
	UnknownClient
)

// String returns the diagnostic kind name
func (k DiagnosticKind) String() string {
	switch k {
	case InvalidEntry:
		return "invalid_entry"
	case UnknownClient:
		return "unknown_client"
	default:
		return "unknown"
	}
}

// Diagnostic reports a skipped or partially used entry
type Diagnostic struct {
	Kind     DiagnosticKind
	EntryID  model.FlexibleID
	ClientID model.FlexibleID
	Reason   string
}

// Result is the output of Aggregate
type Result struct {
	Totals       PeriodTotals
	Distribution []ClientShare
	Diagnostics  []Diagnostic
}

// DistributionHours returns the sum of hours in the distribution
func (r Result) DistributionHours() decimal.Decimal {
	sum := decimal.Zero
	for _, share := range r.Distribution {
		sum = sum.Add(share.Hours)
	}
	return sum
}

// Aggregate sums entry hours into the four period ranges and builds the
// per-client distribution of the month. Entries with negative or non-finite
// hours, or an unparsable date, are left out of every sum and reported.
// Entries whose client is unknown count toward totals and are reported.
// Aggregate has no side effects and returns identical output for identical input.
func Aggregate(entries []model.TimeEntry, ranges Ranges, clients []model.Client) Result {
	loc := ranges.Month.Start.Location()

	known := make(map[model.FlexibleID]int, len(clients))
	clientHours := make([]decimal.Decimal, len(clients))
	for i, c := range clients {
		if _, dup := known[c.ID]; !dup {
			known[c.ID] = i
		}
		clientHours[i] = decimal.Zero
	}

	result := Result{
		Totals: PeriodTotals{
			Today: decimal.Zero,
			Week:  decimal.Zero,
			Month: decimal.Zero,
			Year:  decimal.Zero,
		},
	}

	for _, e := range entries {
		date, hours, reason := ParseEntry(e, loc)
		if reason != "" {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:     InvalidEntry,
				EntryID:  e.ID,
				ClientID: e.ClientID,
				Reason:   reason,
			})
			continue
		}

		if ranges.Today.Contains(date) {
			result.Totals.Today = result.Totals.Today.Add(hours)
		}
		if ranges.Week.Contains(date) {
			result.Totals.Week = result.Totals.Week.Add(hours)
		}
		if ranges.Year.Contains(date) {
			result.Totals.Year = result.Totals.Year.Add(hours)
		}
		if !ranges.Month.Contains(date) {
			continue
		}

		result.Totals.Month = result.Totals.Month.Add(hours)

		idx, ok := known[e.ClientID]
		if !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:     UnknownClient,
				EntryID:  e.ID,
				ClientID: e.ClientID,
				Reason:   "client not found",
			})
			continue
		}
		clientHours[idx] = clientHours[idx].Add(hours)
	}

	result.Distribution = distribution(clients, known, clientHours, result.Totals.Month)
	return result
}

// distribution drops zero-hour clients and orders the rest by hours descending.
// Ties keep the order of the clients list.
func distribution(clients []model.Client, known map[model.FlexibleID]int, hours []decimal.Decimal, total decimal.Decimal) []ClientShare {
	shares := make([]ClientShare, 0, len(clients))
	hundred := decimal.NewFromInt(100)

	for i, c := range clients {
		// Duplicate client IDs collapse onto the first occurrence.
		if known[c.ID] != i || !hours[i].IsPositive() {
			continue
		}

		pct := 0.0
		if total.IsPositive() {
			pct = hours[i].Mul(hundred).Div(total).InexactFloat64()
		}

		shares = append(shares, ClientShare{
			ClientID:   c.ID,
			Name:       c.Name,
			Color:      c.Color,
			Hours:      hours[i],
			Percentage: pct,
		})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Hours.GreaterThan(shares[j].Hours)
	})

	return shares
}

// ParseEntry validates an entry and returns its date in loc and its hours.
// A non-empty reason means the entry must not be summed.
func ParseEntry(e model.TimeEntry, loc *time.Location) (time.Time, decimal.Decimal, string) {
	if reason := validateHours(e.Hours); reason != "" {
		return time.Time{}, decimal.Zero, reason
	}
	date, err := dateutil.ParseDate(e.Date, loc)
	if err != nil {
		return time.Time{}, decimal.Zero, fmt.Sprintf("invalid date %q", e.Date)
	}
	return date, decimal.NewFromFloat(e.Hours), ""
}

func validateHours(hours float64) string {
	switch {
	case math.IsNaN(hours):
		return "hours is NaN"
	case math.IsInf(hours, 0):
		return "hours is infinite"
	case hours < 0:
		return fmt.Sprintf("negative hours %v", hours)
	default:
		return ""
	}
}
