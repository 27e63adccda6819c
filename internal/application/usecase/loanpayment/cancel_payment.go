// Package loanpayment contains loan payment lifecycle use cases.
package loanpayment

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// CancelPaymentInput represents the input for cancelling a loan payment.
type CancelPaymentInput struct {
	PaymentID uuid.UUID
}

// CancelPaymentOutput represents the output of cancelling a loan payment.
type CancelPaymentOutput struct {
	Payment *LoanPaymentOutput
}

// CancelPaymentUseCase cancels a pending or overdue loan payment without
// creating a ledger transaction. Used directly and by early full repayment.
type CancelPaymentUseCase struct {
	paymentRepo adapter.LoanPaymentRepository
	cache       adapter.ForecastCache
}

// NewCancelPaymentUseCase creates a new CancelPaymentUseCase instance.
func NewCancelPaymentUseCase(paymentRepo adapter.LoanPaymentRepository, cache adapter.ForecastCache) *CancelPaymentUseCase {
	return &CancelPaymentUseCase{
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// Execute performs the cancellation.
func (uc *CancelPaymentUseCase) Execute(ctx context.Context, input CancelPaymentInput) (*CancelPaymentOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	if !payment.IsOpen() {
		return nil, domainerror.NewPaymentStateError(
			string(payment.Status),
			string(entity.LoanPaymentStatusCancelled),
		)
	}

	cancelled, err := uc.paymentRepo.Cancel(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	invalidateForecast(ctx, uc.cache)

	return &CancelPaymentOutput{Payment: ToLoanPaymentOutput(cancelled)}, nil
}
