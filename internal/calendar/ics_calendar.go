package calendar

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
)

// icsDateLayout is the VALUE=DATE form used for all-day events
const icsDateLayout = "20060102"

// ICSCalendar implements Provider on top of an iCalendar (.ics) file.
// Every VEVENT becomes a holiday on its start date, named by its SUMMARY.
type ICSCalendar struct {
	filePath string
	loc      *time.Location
	logger   *zap.Logger

	once    sync.Once
	loadErr error
	data    map[int][]Holiday
}

// NewICSCalendar creates a new ICSCalendar instance
func NewICSCalendar(filePath string, loc *time.Location, logger *zap.Logger) *ICSCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &ICSCalendar{
		filePath: filePath,
		loc:      loc,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load parses the iCalendar file once
func (c *ICSCalendar) Load() error {
	c.once.Do(func() {
		f, err := os.Open(c.filePath)
		if err != nil {
			c.loadErr = fmt.Errorf("failed to open ics file: %w", err)
			return
		}
		defer f.Close()

		cal, err := ics.ParseCalendar(f)
		if err != nil {
			c.loadErr = fmt.Errorf("failed to parse ics file: %w", err)
			return
		}
		c.loadEvents(cal.Events())
	})
	return c.loadErr
}

func (c *ICSCalendar) loadEvents(events []*ics.VEvent) {
	skipped := 0
	for _, event := range events {
		date, err := c.eventDate(event)
		if err != nil {
			skipped++
			c.logger.Debug("Skipping ics event without usable start date", zap.Error(err))
			continue
		}

		name := ""
		if summary := event.GetProperty(ics.ComponentPropertySummary); summary != nil {
			name = summary.Value
		}

		c.data[date.Year()] = append(c.data[date.Year()], Holiday{Date: date, Name: name})
	}

	c.logger.Info("ICS holiday calendar loaded",
		zap.String("file", c.filePath),
		zap.Int("events", len(events)),
		zap.Int("skipped", skipped))
}

// eventDate reads DTSTART as a calendar day in the configured location
func (c *ICSCalendar) eventDate(event *ics.VEvent) (time.Time, error) {
	prop := event.GetProperty(ics.ComponentPropertyDtStart)
	if prop == nil {
		return time.Time{}, fmt.Errorf("event has no DTSTART")
	}

	value := strings.TrimSpace(prop.Value)
	if len(value) >= len(icsDateLayout) {
		// Only the date part matters; time and zone suffixes are ignored.
		if d, err := time.ParseInLocation(icsDateLayout, value[:len(icsDateLayout)], c.loc); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported DTSTART value %q", value)
}

// HolidaysForYear returns events of the given year
func (c *ICSCalendar) HolidaysForYear(_ context.Context, year int) ([]Holiday, error) {
	if err := c.Load(); err != nil {
		return nil, err
	}
	return c.data[year], nil
}
