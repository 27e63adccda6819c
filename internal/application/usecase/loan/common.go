// Package loan contains lender and loan use cases.
package loan

import (
	"context"
	"log/slog"

	"github.com/cashplan/backend/internal/application/adapter"
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
