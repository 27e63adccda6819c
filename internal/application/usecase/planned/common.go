// Package planned contains planned transaction and occurrence use cases.
package planned

import (
	"context"
	"log/slog"
	"time"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	"github.com/cashplan/backend/internal/domain/recurrence"
)

// invalidateForecast drops cached forecast balances after a write. The cache
// is an optimization; a failed invalidation is logged, not surfaced.
func invalidateForecast(ctx context.Context, cache adapter.ForecastCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.Debug("Failed to invalidate forecast cache", "error", err)
	}
}

// occurrenceDates expands the planned transaction's series over the window,
// capped at the series end when one exists.
func occurrenceDates(p *entity.PlannedTransaction, windowStart, windowEnd time.Time) ([]time.Time, error) {
	if end := p.SeriesEnd(); end != nil && end.Before(windowEnd) {
		windowEnd = *end
	}
	if windowEnd.Before(windowStart) {
		return nil, nil
	}
	return recurrence.Expand(p.Rule, p.StartDate, windowStart, windowEnd)
}

// isOccurrenceDate reports whether date is a member of the planned
// transaction's series.
func isOccurrenceDate(p *entity.PlannedTransaction, date time.Time) (bool, error) {
	date = entity.DateOnly(date)
	dates, err := occurrenceDates(p, date, date)
	if err != nil {
		return false, err
	}
	return len(dates) == 1, nil
}
