// Package loanpayment contains loan payment lifecycle use cases.
package loanpayment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// CreatePaymentInput represents the input for scheduling a loan payment.
// TotalAmount is optional; when zero it is derived as principal + interest,
// otherwise it must equal that sum exactly.
type CreatePaymentInput struct {
	LoanID          uuid.UUID
	ScheduledDate   time.Time
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
}

// CreatePaymentOutput represents the output of scheduling a loan payment.
type CreatePaymentOutput struct {
	Payment *LoanPaymentOutput
}

// CreatePaymentUseCase handles loan payment scheduling.
type CreatePaymentUseCase struct {
	loanRepo    adapter.LoanRepository
	paymentRepo adapter.LoanPaymentRepository
	cache       adapter.ForecastCache
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase instance.
func NewCreatePaymentUseCase(
	loanRepo adapter.LoanRepository,
	paymentRepo adapter.LoanPaymentRepository,
	cache adapter.ForecastCache,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// Execute performs the loan payment creation.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	if input.PrincipalAmount.IsNegative() || input.InterestAmount.IsNegative() {
		return nil, domainerror.ErrInvalidPaymentAmounts
	}

	sum := input.PrincipalAmount.Add(input.InterestAmount)
	if sum.IsZero() {
		return nil, domainerror.ErrInvalidPaymentAmounts
	}
	if !input.TotalAmount.IsZero() && !input.TotalAmount.Equal(sum) {
		return nil, domainerror.ErrInvalidPaymentAmounts
	}

	if input.ScheduledDate.IsZero() {
		return nil, domainerror.ErrMissingScheduledDate
	}

	loan, err := uc.loanRepo.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != entity.LoanStatusActive {
		return nil, domainerror.ErrLoanNotActive
	}

	payment := entity.NewLoanPayment(
		input.LoanID,
		input.ScheduledDate,
		input.PrincipalAmount,
		input.InterestAmount,
	)

	if err := uc.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create loan payment: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return &CreatePaymentOutput{Payment: ToLoanPaymentOutput(payment)}, nil
}
