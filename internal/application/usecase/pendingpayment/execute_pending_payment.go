// Package pendingpayment contains pending payment use cases.
package pendingpayment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// ExecutePendingPaymentInput represents the input for executing a pending payment.
type ExecutePendingPaymentInput struct {
	PaymentID uuid.UUID
	Date      time.Time
}

// ExecutePendingPaymentOutput represents the output of executing a pending payment.
type ExecutePendingPaymentOutput struct {
	Payment     *entity.PendingPayment
	Transaction *entity.Transaction
}

// ExecutePendingPaymentUseCase settles an active pending payment: it records
// the expense transaction in the payment's category and links it.
type ExecutePendingPaymentUseCase struct {
	paymentRepo adapter.PendingPaymentRepository
	cache       adapter.ForecastCache
}

// NewExecutePendingPaymentUseCase creates a new ExecutePendingPaymentUseCase instance.
func NewExecutePendingPaymentUseCase(paymentRepo adapter.PendingPaymentRepository, cache adapter.ForecastCache) *ExecutePendingPaymentUseCase {
	return &ExecutePendingPaymentUseCase{
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// Execute performs the payment execution.
func (uc *ExecutePendingPaymentUseCase) Execute(ctx context.Context, input ExecutePendingPaymentInput) (*ExecutePendingPaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status != entity.PendingPaymentStatusActive {
		return nil, domainerror.ErrPendingPaymentNotActive
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	date = entity.DateOnly(date)

	transaction := entity.NewTransaction(
		date,
		payment.Amount,
		entity.TransactionKindExpense,
		payment.CategoryID,
		payment.Description,
	)

	payment.Status = entity.PendingPaymentStatusExecuted
	payment.TransactionID = &transaction.ID
	payment.UpdatedAt = time.Now().UTC()

	if err := uc.paymentRepo.ExecuteAndLink(ctx, payment, transaction); err != nil {
		return nil, err
	}

	invalidateForecast(ctx, uc.cache)

	return &ExecutePendingPaymentOutput{
		Payment:     payment,
		Transaction: transaction,
	}, nil
}

// CancelPendingPaymentUseCase cancels an active pending payment without
// creating a transaction.
type CancelPendingPaymentUseCase struct {
	paymentRepo adapter.PendingPaymentRepository
	cache       adapter.ForecastCache
}

// NewCancelPendingPaymentUseCase creates a new CancelPendingPaymentUseCase instance.
func NewCancelPendingPaymentUseCase(paymentRepo adapter.PendingPaymentRepository, cache adapter.ForecastCache) *CancelPendingPaymentUseCase {
	return &CancelPendingPaymentUseCase{
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// Execute performs the cancellation. The transition happens in the
// repository under a status check, so a payment executed by a concurrent
// caller is rejected instead of overwritten.
func (uc *CancelPendingPaymentUseCase) Execute(ctx context.Context, paymentID uuid.UUID) (*entity.PendingPayment, error) {
	cancelled, err := uc.paymentRepo.Cancel(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	invalidateForecast(ctx, uc.cache)

	return cancelled, nil
}
