package calendar

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/username/tidrapport/pkg/dateutil"
	"go.uber.org/zap"
)

// FileCalendar implements Provider using a local text file
type FileCalendar struct {
	filePath string
	loc      *time.Location
	logger   *zap.Logger

	once    sync.Once
	loadErr error
	data    map[int][]Holiday // key: year
}

// NewFileCalendar creates a new FileCalendar instance
func NewFileCalendar(filePath string, loc *time.Location, logger *zap.Logger) *FileCalendar {
	if loc == nil {
		loc = time.Local
	}
	return &FileCalendar{
		filePath: filePath,
		loc:      loc,
		logger:   logger,
		data:     make(map[int][]Holiday),
	}
}

// Load loads holiday data from file
func (fc *FileCalendar) Load() error {
	fc.once.Do(func() {
		fc.loadErr = fc.load()
	})
	return fc.loadErr
}

func (fc *FileCalendar) load() error {
	file, err := os.Open(fc.filePath)
	if err != nil {
		return fmt.Errorf("failed to open holiday file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNo := 0
	count := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Format: YYYY-MM-DD name
		// Example: 2025-12-25 Juldagen
		dateStr, name, _ := strings.Cut(line, " ")
		date, err := dateutil.ParseDate(dateStr, fc.loc)
		if err != nil {
			fc.logger.Warn("Failed to parse holiday date",
				zap.String("file", fc.filePath),
				zap.Int("line", lineNo),
				zap.String("date", dateStr))
			continue
		}

		fc.data[date.Year()] = append(fc.data[date.Year()], Holiday{
			Date: date,
			Name: strings.TrimSpace(name),
		})
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading holiday file: %w", err)
	}

	fc.logger.Info("Holiday file loaded",
		zap.String("file", fc.filePath),
		zap.Int("years", len(fc.data)),
		zap.Int("holidays", count))

	return nil
}

// HolidaysForYear returns holidays listed in the file for the year
func (fc *FileCalendar) HolidaysForYear(_ context.Context, year int) ([]Holiday, error) {
	if err := fc.Load(); err != nil {
		return nil, err
	}
	return fc.data[year], nil
}
