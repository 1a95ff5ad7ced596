package calendar

import (
	"context"

	"go.uber.org/zap"
)

// CompositeCalendar implements Provider with fallback strategy
// Primary: usually the HTTP API
// Fallback: a local file or the computed calendar
type CompositeCalendar struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(primary, fallback Provider, logger *zap.Logger) *CompositeCalendar {
	return &CompositeCalendar{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// HolidaysForYear asks the primary provider and falls back on error
func (cc *CompositeCalendar) HolidaysForYear(ctx context.Context, year int) ([]Holiday, error) {
	holidays, err := cc.primary.HolidaysForYear(ctx, year)
	if err == nil {
		return holidays, nil
	}

	cc.logger.Warn("Primary holiday source failed, using fallback",
		zap.Int("year", year),
		zap.Error(err))

	return cc.fallback.HolidaysForYear(ctx, year)
}
