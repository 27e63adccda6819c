// Package loan contains lender and loan use cases.
package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// DisburseLoanInput represents the input for recording a loan disbursement.
type DisburseLoanInput struct {
	LoanID uuid.UUID
	Date   time.Time
}

// DisburseLoanOutput represents the output of recording a loan disbursement.
type DisburseLoanOutput struct {
	Loan        *entity.Loan
	Transaction *entity.Transaction
}

// DisburseLoanUseCase records the income transaction for a loan's payout and
// links it to the loan. The link is set at most once.
type DisburseLoanUseCase struct {
	loanRepo     adapter.LoanRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.ForecastCache
}

// NewDisburseLoanUseCase creates a new DisburseLoanUseCase instance.
func NewDisburseLoanUseCase(
	loanRepo adapter.LoanRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *DisburseLoanUseCase {
	return &DisburseLoanUseCase{
		loanRepo:     loanRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute records the disbursement.
func (uc *DisburseLoanUseCase) Execute(ctx context.Context, input DisburseLoanInput) (*DisburseLoanOutput, error) {
	loan, err := uc.loanRepo.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	if loan.DisbursementTransactionID != nil {
		return nil, domainerror.ErrDisbursementAlreadyLinked
	}

	date := input.Date
	if date.IsZero() {
		date = loan.IssueDate
	}

	category, err := uc.categoryRepo.FindSystemByName(ctx, entity.SystemCategoryLoanDisbursements)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve loan disbursement category: %w", err)
	}

	transaction := entity.NewTransaction(
		date,
		loan.Amount,
		entity.TransactionKindIncome,
		category.ID,
		"Loan disbursement",
	)

	if err := uc.loanRepo.LinkDisbursement(ctx, loan, transaction); err != nil {
		return nil, err
	}

	invalidateForecast(ctx, uc.cache)

	return &DisburseLoanOutput{Loan: loan, Transaction: transaction}, nil
}
