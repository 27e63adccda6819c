// Package loanpayment contains loan payment lifecycle use cases.
package loanpayment

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
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

// LoanPaymentOutput represents a loan payment returned by use cases.
type LoanPaymentOutput struct {
	ID              uuid.UUID
	LoanID          uuid.UUID
	ScheduledDate   time.Time
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          entity.LoanPaymentStatus
	ExecutedDate    *time.Time
	ExecutedAmount  *decimal.Decimal
	TransactionID   *uuid.UUID
	OverdueDays     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToLoanPaymentOutput maps a loan payment entity to its output form.
func ToLoanPaymentOutput(p *entity.LoanPayment) *LoanPaymentOutput {
	return &LoanPaymentOutput{
		ID:              p.ID,
		LoanID:          p.LoanID,
		ScheduledDate:   p.ScheduledDate,
		PrincipalAmount: p.PrincipalAmount,
		InterestAmount:  p.InterestAmount,
		TotalAmount:     p.TotalAmount,
		Status:          p.Status,
		ExecutedDate:    p.ExecutedDate,
		ExecutedAmount:  p.ExecutedAmount,
		TransactionID:   p.TransactionID,
		OverdueDays:     p.OverdueDays,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
