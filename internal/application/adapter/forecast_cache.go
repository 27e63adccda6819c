// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ForecastCache caches computed forecast balances per date. It is a pure
// optimization: a miss or an unavailable backend must make the caller fall
// through to computation, never fail the request.
type ForecastCache interface {
	// Get returns the cached balance for the date, or nil on a miss.
	Get(ctx context.Context, date time.Time) (*decimal.Decimal, error)

	// Set stores the balance for the date.
	Set(ctx context.Context, date time.Time, balance decimal.Decimal) error

	// Invalidate drops every cached balance. Called by write use cases after
	// any change that affects the forecast.
	Invalidate(ctx context.Context) error
}
