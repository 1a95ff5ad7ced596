package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	// DefaultHolidayAPIURL is the Nager.Date public holiday endpoint
	DefaultHolidayAPIURL = "https://date.nager.at/api/v3/PublicHolidays/{year}/{country}"
	defaultHTTPTimeout   = 10 * time.Second
	defaultCacheTTL      = 24 * time.Hour
)

// HTTPCalendar implements Provider using a JSON public holiday API
type HTTPCalendar struct {
	urlTemplate string
	country     string
	loc         *time.Location
	httpClient  *http.Client
	logger      *zap.Logger
	cache       map[int]*cachedYear
	cacheMu     sync.RWMutex
	cacheTTL    time.Duration
}

type cachedYear struct {
	data      []Holiday
	fetchedAt time.Time
}

// apiHoliday represents a single entry of the API response
type apiHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// NewHTTPCalendar creates a new HTTPCalendar instance.
// urlTemplate may contain {year} and {country} placeholders.
func NewHTTPCalendar(urlTemplate, country string, cacheTTL time.Duration, loc *time.Location, logger *zap.Logger) *HTTPCalendar {
	if urlTemplate == "" {
		urlTemplate = DefaultHolidayAPIURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}
	if loc == nil {
		loc = time.Local
	}

	return &HTTPCalendar{
		urlTemplate: urlTemplate,
		country:     country,
		loc:         loc,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[int]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// HolidaysForYear returns holidays for the year, served from cache when fresh
func (c *HTTPCalendar) HolidaysForYear(ctx context.Context, year int) ([]Holiday, error) {
	c.cacheMu.RLock()
	if cached, ok := c.cache[year]; ok {
		if time.Since(cached.fetchedAt) < c.cacheTTL {
			c.cacheMu.RUnlock()
			c.logger.Debug("Using cached holidays", zap.Int("year", year))
			return cached.data, nil
		}
	}
	c.cacheMu.RUnlock()

	holidays, err := c.fetchYear(ctx, year)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.cache[year] = &cachedYear{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	c.cacheMu.Unlock()

	return holidays, nil
}

// fetchYear downloads one year of holidays from the API
func (c *HTTPCalendar) fetchYear(ctx context.Context, year int) ([]Holiday, error) {
	url := strings.NewReplacer(
		"{year}", strconv.Itoa(year),
		"{country}", c.country,
	).Replace(c.urlTemplate)

	c.logger.Debug("Fetching holidays",
		zap.String("url", url),
		zap.Int("year", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		c.logger.Info("Holiday API has no data for year",
			zap.Int("year", year),
			zap.Int("status", resp.StatusCode))
		return []Holiday{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var payload []apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	holidays := make([]Holiday, 0, len(payload))
	for _, item := range payload {
		date, err := dateutil.ParseDate(item.Date, c.loc)
		if err != nil {
			c.logger.Warn("Skipping holiday with invalid date",
				zap.String("date", item.Date),
				zap.String("name", item.Name))
			continue
		}

		name := item.LocalName
		if name == "" {
			name = item.Name
		}
		holidays = append(holidays, Holiday{Date: date, Name: name})
	}

	c.logger.Info("Holidays fetched from API",
		zap.Int("year", year),
		zap.String("country", c.country),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// ClearCache clears the cache
func (c *HTTPCalendar) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache = make(map[int]*cachedYear)
	c.logger.Info("Holiday cache cleared")
}
