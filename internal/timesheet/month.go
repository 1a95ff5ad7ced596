package timesheet

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/tidrapport/internal/calendar"
	"github.com/username/tidrapport/internal/grid"
	"github.com/username/tidrapport/internal/model"
	"github.com/username/tidrapport/internal/stats"
	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// Day is one classified grid day with the hours logged on it
type Day struct {
	Date    time.Time
	Class   grid.DayClass
	Display grid.DisplayClass
	Clients []ClientHours // known clients first, in client order
	Total   decimal.Decimal
}

// Week is one grid row
type Week struct {
	Number int
	Days   []Day
}

// MonthView is a fully resolved month grid
type MonthView struct {
	Year         int
	Month        time.Month
	ShowWeekends bool
	Weeks        []Week
	Holidays     []calendar.Holiday // holidays falling on the grid, by date
	Total        decimal.Decimal    // hours on in-month days
}

// MonthView builds the grid for (year, month), classifies every day against
// today and the holidays of each year the grid touches, and attaches the
// per-client hours of each day.
func (s *Service) MonthView(ctx context.Context, year int, month time.Month, today time.Time) (*MonthView, error) {
	loc := s.opts.Location

	cells, err := grid.BuildIn(year, month, s.opts.ShowWeekends, loc)
	if err != nil {
		return nil, err
	}

	days := grid.Days(cells)
	span := dateutil.NewRange(days[0], days[len(days)-1])

	clients, entries, err := s.fetch(ctx, span)
	if err != nil {
		return nil, err
	}

	holidays := calendar.ForDates(ctx, s.holidays, days, s.logger)
	perDay := s.groupByDay(entries, clients, loc)
	today = today.In(loc)

	view := &MonthView{
		Year:         year,
		Month:        month,
		ShowWeekends: s.opts.ShowWeekends,
		Total:        decimal.Zero,
	}

	for _, row := range grid.Rows(cells) {
		week := Week{Number: row.Week, Days: make([]Day, 0, len(row.Days))}
		for _, date := range row.Days {
			class := grid.Classify(date, today, year, month, holidays)
			day := Day{
				Date:    date,
				Class:   class,
				Display: class.Display(),
				Clients: perDay[dateutil.FormatDate(date)],
				Total:   decimal.Zero,
			}
			for _, ch := range day.Clients {
				day.Total = day.Total.Add(ch.Hours)
			}
			if class.IsCurrentMonth {
				view.Total = view.Total.Add(day.Total)
			}
			if h, ok := holidays.Lookup(date); ok {
				view.Holidays = append(view.Holidays, h)
			}
			week.Days = append(week.Days, day)
		}
		view.Weeks = append(view.Weeks, week)
	}

	s.logger.Debug("Month view built",
		zap.Int("year", year),
		zap.Stringer("month", month),
		zap.Int("weeks", len(view.Weeks)),
		zap.Int("holidays", len(view.Holidays)))

	return view, nil
}

// groupByDay sums valid entries per date and client. Known clients keep
// the order of the client list; unknown clients follow in order of appearance
// and are named by their ID.
func (s *Service) groupByDay(entries []model.TimeEntry, clients []model.Client, loc *time.Location) map[string][]ClientHours {
	order := make(map[model.FlexibleID]int, len(clients))
	for i, c := range clients {
		if _, ok := order[c.ID]; !ok {
			order[c.ID] = i
		}
	}
	index := clientIndex(clients)

	grouped := make(map[string][]ClientHours)
	for _, e := range entries {
		date, hours, reason := stats.ParseEntry(e, loc)
		if reason != "" {
			s.logger.Warn("Skipping invalid entry",
				zap.String("entry_id", e.ID.String()),
				zap.String("reason", reason))
			continue
		}

		key := dateutil.FormatDate(date)
		list := grouped[key]
		found := false
		for i := range list {
			if list[i].ClientID == e.ClientID {
				list[i].Hours = list[i].Hours.Add(hours)
				found = true
				break
			}
		}
		if !found {
			ch := ClientHours{ClientID: e.ClientID, Name: e.ClientID.String(), Hours: hours}
			if c, ok := index[e.ClientID]; ok {
				ch.Name = c.Name
				ch.Color = c.Color
			}
			list = append(list, ch)
		}
		grouped[key] = list
	}

	for key, list := range grouped {
		sortByClientOrder(list, order)
		grouped[key] = list
	}
	return grouped
}

func sortByClientOrder(list []ClientHours, order map[model.FlexibleID]int) {
	rank := func(id model.FlexibleID) int {
		if i, ok := order[id]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return rank(list[i].ClientID) < rank(list[j].ClientID)
	})
}
