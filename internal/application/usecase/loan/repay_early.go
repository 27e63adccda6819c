// Package loan contains lender and loan use cases.
package loan

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

// RepayEarlyInput represents the input for an early loan repayment.
type RepayEarlyInput struct {
	LoanID uuid.UUID
	Amount decimal.Decimal
	Date   time.Time
	Full   bool
}

// RepayEarlyOutput represents the output of an early loan repayment.
type RepayEarlyOutput struct {
	Loan              *entity.Loan
	Transaction       *entity.Transaction
	CancelledPayments int64
}

// RepayEarlyUseCase records an early repayment. A full repayment cancels
// every non-terminal payment of the schedule and marks the loan paid off; a
// partial repayment only records the extra expense transaction, leaving the
// schedule for the caller to regenerate.
type RepayEarlyUseCase struct {
	loanRepo        adapter.LoanRepository
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.ForecastCache
}

// NewRepayEarlyUseCase creates a new RepayEarlyUseCase instance.
func NewRepayEarlyUseCase(
	loanRepo adapter.LoanRepository,
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *RepayEarlyUseCase {
	return &RepayEarlyUseCase{
		loanRepo:        loanRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute records the repayment.
func (uc *RepayEarlyUseCase) Execute(ctx context.Context, input RepayEarlyInput) (*RepayEarlyOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidRepaymentAmount
	}

	loan, err := uc.loanRepo.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != entity.LoanStatusActive {
		return nil, domainerror.ErrLoanNotActive
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	category, err := uc.categoryRepo.FindSystemByName(ctx, entity.SystemCategoryLoanPayments)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve loan payment category: %w", err)
	}

	transaction := entity.NewTransaction(
		date,
		input.Amount,
		entity.TransactionKindExpense,
		category.ID,
		"Early loan repayment",
	)

	var cancelled int64
	if input.Full {
		cancelled, err = uc.loanRepo.SettleFullRepayment(ctx, loan, transaction)
		if err != nil {
			return nil, err
		}
		loan.Status = entity.LoanStatusPaidOff
	} else {
		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			return nil, fmt.Errorf("failed to record repayment transaction: %w", err)
		}
	}

	invalidateForecast(ctx, uc.cache)

	return &RepayEarlyOutput{
		Loan:              loan,
		Transaction:       transaction,
		CancelledPayments: cancelled,
	}, nil
}
