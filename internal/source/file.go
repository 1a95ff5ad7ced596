// Package source reads clients and time entries from exported data.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/username/tidrapport/internal/model"
	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// Export is the on-disk layout of a data file
type Export struct {
	Clients     []model.Client    `json:"clients"`
	TimeEntries []model.TimeEntry `json:"time_entries"`
}

// File serves clients and entries from a JSON export. It never writes.
type File struct {
	path   string
	loc    *time.Location
	logger *zap.Logger

	mu     sync.RWMutex
	loaded bool
	data   Export
}

// NewFile creates a file source. Entry dates are interpreted in loc.
func NewFile(path string, loc *time.Location, logger *zap.Logger) *File {
	if loc == nil {
		loc = time.Local
	}
	return &File{
		path:   path,
		loc:    loc,
		logger: logger,
	}
}

// Load reads the export from disk, replacing anything read before
func (f *File) Load() error {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("failed to read data file: %w", err)
	}

	var data Export
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse data file: %w", err)
	}

	sort.SliceStable(data.TimeEntries, func(i, j int) bool {
		return data.TimeEntries[i].Date < data.TimeEntries[j].Date
	})

	f.mu.Lock()
	f.data = data
	f.loaded = true
	f.mu.Unlock()

	f.logger.Info("Data file loaded",
		zap.String("path", f.path),
		zap.Int("clients", len(data.Clients)),
		zap.Int("entries", len(data.TimeEntries)))

	return nil
}

func (f *File) ensureLoaded() error {
	f.mu.RLock()
	loaded := f.loaded
	f.mu.RUnlock()
	if loaded {
		return nil
	}
	return f.Load()
}

// Clients returns all clients in file order
func (f *File) Clients(ctx context.Context) ([]model.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.ensureLoaded(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	clients := make([]model.Client, len(f.data.Clients))
	copy(clients, f.data.Clients)
	return clients, nil
}

// EntriesBetween returns entries dated from..to inclusive, ordered by date.
// Entries whose date cannot be parsed are passed through so callers can
// report them.
func (f *File) EntriesBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.ensureLoaded(); err != nil {
		return nil, err
	}

	window := dateutil.NewRange(from.In(f.loc), to.In(f.loc))

	f.mu.RLock()
	defer f.mu.RUnlock()

	var entries []model.TimeEntry
	skipped := 0
	for _, e := range f.data.TimeEntries {
		date, err := dateutil.ParseDate(e.Date, f.loc)
		if err != nil {
			f.logger.Warn("Entry has unparsable date",
				zap.String("entry_id", e.ID.String()),
				zap.String("date", e.Date))
			entries = append(entries, e)
			continue
		}
		if !window.Contains(date) {
			skipped++
			continue
		}
		entries = append(entries, e)
	}

	f.logger.Debug("Entries selected",
		zap.String("range", window.String()),
		zap.Int("count", len(entries)),
		zap.Int("outside_range", skipped))

	return entries, nil
}
