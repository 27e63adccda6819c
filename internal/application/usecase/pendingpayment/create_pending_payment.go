// Package pendingpayment contains pending payment use cases.
package pendingpayment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// invalidateForecast drops cached forecast balances after a write.
func invalidateForecast(ctx context.Context, cache adapter.ForecastCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.Debug("Failed to invalidate forecast cache", "error", err)
	}
}

// CreatePendingPaymentInput represents the input for creating a pending payment.
type CreatePendingPaymentInput struct {
	Amount      decimal.Decimal
	CategoryID  uuid.UUID
	Description string
	Priority    entity.PendingPaymentPriority
	PlannedDate *time.Time
}

// CreatePendingPaymentOutput represents the output of creating a pending payment.
type CreatePendingPaymentOutput struct {
	Payment *entity.PendingPayment
}

// CreatePendingPaymentUseCase handles pending payment creation.
type CreatePendingPaymentUseCase struct {
	paymentRepo  adapter.PendingPaymentRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.ForecastCache
}

// NewCreatePendingPaymentUseCase creates a new CreatePendingPaymentUseCase instance.
func NewCreatePendingPaymentUseCase(
	paymentRepo adapter.PendingPaymentRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *CreatePendingPaymentUseCase {
	return &CreatePendingPaymentUseCase{
		paymentRepo:  paymentRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the creation.
func (uc *CreatePendingPaymentUseCase) Execute(ctx context.Context, input CreatePendingPaymentInput) (*CreatePendingPaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidPendingPaymentAmount
	}
	if !isValidPriority(input.Priority) {
		return nil, domainerror.ErrInvalidPendingPaymentPriority
	}

	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	payment := entity.NewPendingPayment(
		input.Amount,
		input.CategoryID,
		input.Description,
		input.Priority,
		input.PlannedDate,
	)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create pending payment: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return &CreatePendingPaymentOutput{Payment: payment}, nil
}

// isValidPriority validates the pending payment priority.
func isValidPriority(p entity.PendingPaymentPriority) bool {
	switch p {
	case entity.PendingPaymentPriorityLow,
		entity.PendingPaymentPriorityMedium,
		entity.PendingPaymentPriorityHigh,
		entity.PendingPaymentPriorityCritical:
		return true
	}
	return false
}

// ListPendingPaymentsUseCase lists pending payments by status, priority and
// planned-date presence.
type ListPendingPaymentsUseCase struct {
	paymentRepo adapter.PendingPaymentRepository
}

// NewListPendingPaymentsUseCase creates a new ListPendingPaymentsUseCase instance.
func NewListPendingPaymentsUseCase(paymentRepo adapter.PendingPaymentRepository) *ListPendingPaymentsUseCase {
	return &ListPendingPaymentsUseCase{paymentRepo: paymentRepo}
}

// Execute performs the listing.
func (uc *ListPendingPaymentsUseCase) Execute(ctx context.Context, filter adapter.PendingPaymentFilter) ([]*entity.PendingPayment, error) {
	payments, err := uc.paymentRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payments: %w", err)
	}
	return payments, nil
}
