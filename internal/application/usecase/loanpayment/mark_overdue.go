// Package loanpayment contains loan payment lifecycle use cases.
package loanpayment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
)

// MarkOverdueInput represents the input for the overdue sweep.
type MarkOverdueInput struct {
	AsOf time.Time
}

// MarkOverdueOutput represents the output of the overdue sweep.
type MarkOverdueOutput struct {
	TransitionedCount int64
}

// MarkOverdueUseCase promotes pending payments past their scheduled date to
// overdue. The sweep is idempotent: a second run without new payments
// transitions nothing.
type MarkOverdueUseCase struct {
	paymentRepo adapter.LoanPaymentRepository
	cache       adapter.ForecastCache
}

// NewMarkOverdueUseCase creates a new MarkOverdueUseCase instance.
func NewMarkOverdueUseCase(paymentRepo adapter.LoanPaymentRepository, cache adapter.ForecastCache) *MarkOverdueUseCase {
	return &MarkOverdueUseCase{
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// Execute performs the overdue sweep as of the given date.
func (uc *MarkOverdueUseCase) Execute(ctx context.Context, input MarkOverdueInput) (*MarkOverdueOutput, error) {
	asOf := input.AsOf
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}
	asOf = entity.DateOnly(asOf)

	count, err := uc.paymentRepo.MarkOverdue(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue payments: %w", err)
	}

	if count > 0 {
		slog.Info("Marked loan payments overdue", "count", count, "as_of", asOf.Format("2006-01-02"))
		invalidateForecast(ctx, uc.cache)
	}

	return &MarkOverdueOutput{TransitionedCount: count}, nil
}
