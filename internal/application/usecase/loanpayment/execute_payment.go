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

// ExecutePaymentInput represents the input for executing a loan payment.
type ExecutePaymentInput struct {
	PaymentID      uuid.UUID
	ExecutedAmount decimal.Decimal
	ExecutedDate   time.Time
}

// ExecutePaymentOutput represents the output of executing a loan payment.
type ExecutePaymentOutput struct {
	Payment *LoanPaymentOutput
}

// ExecutePaymentUseCase executes a pending or overdue loan payment: it
// records one expense transaction in the system loan payment category, links
// it to the payment, and moves the payment to executed or executed_late
// depending on how far past the scheduled date it fired.
type ExecutePaymentUseCase struct {
	paymentRepo  adapter.LoanPaymentRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.ForecastCache
}

// NewExecutePaymentUseCase creates a new ExecutePaymentUseCase instance.
func NewExecutePaymentUseCase(
	paymentRepo adapter.LoanPaymentRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *ExecutePaymentUseCase {
	return &ExecutePaymentUseCase{
		paymentRepo:  paymentRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the payment execution.
func (uc *ExecutePaymentUseCase) Execute(ctx context.Context, input ExecutePaymentInput) (*ExecutePaymentOutput, error) {
	if !input.ExecutedAmount.IsPositive() {
		return nil, domainerror.ErrInvalidExecutedAmount
	}

	executedDate := input.ExecutedDate
	if executedDate.IsZero() {
		executedDate = time.Now().UTC()
	}
	executedDate = entity.DateOnly(executedDate)

	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}

	if !payment.IsOpen() {
		return nil, domainerror.NewPaymentStateError(
			string(payment.Status),
			string(entity.LoanPaymentStatusExecuted),
		)
	}

	overdueDays := entity.OverdueDaysBetween(payment.ScheduledDate, executedDate)
	status := entity.LoanPaymentStatusExecuted
	if overdueDays > 0 {
		status = entity.LoanPaymentStatusExecutedLate
	}

	category, err := uc.categoryRepo.FindSystemByName(ctx, entity.SystemCategoryLoanPayments)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve loan payment category: %w", err)
	}

	transaction := entity.NewTransaction(
		executedDate,
		input.ExecutedAmount,
		entity.TransactionKindExpense,
		category.ID,
		"Loan payment",
	)

	payment.Status = status
	payment.ExecutedDate = &executedDate
	payment.ExecutedAmount = &input.ExecutedAmount
	payment.TransactionID = &transaction.ID
	payment.OverdueDays = overdueDays
	payment.UpdatedAt = time.Now().UTC()

	// The repository re-checks the stored status inside one write
	// transaction, so a racing execute or cancel cannot both land.
	if err := uc.paymentRepo.ExecuteAndLink(ctx, payment, transaction); err != nil {
		return nil, err
	}

	invalidateForecast(ctx, uc.cache)

	return &ExecutePaymentOutput{Payment: ToLoanPaymentOutput(payment)}, nil
}
