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

// CreateLoanInput represents the input for loan creation.
type CreateLoanInput struct {
	LenderID     uuid.UUID
	Amount       decimal.Decimal
	InterestRate *decimal.Decimal
	IssueDate    time.Time
	EndDate      *time.Time
}

// CreateLoanOutput represents the output of loan creation.
type CreateLoanOutput struct {
	Loan *entity.Loan
}

// CreateLoanUseCase handles loan creation.
type CreateLoanUseCase struct {
	loanRepo   adapter.LoanRepository
	lenderRepo adapter.LenderRepository
}

// NewCreateLoanUseCase creates a new CreateLoanUseCase instance.
func NewCreateLoanUseCase(loanRepo adapter.LoanRepository, lenderRepo adapter.LenderRepository) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		loanRepo:   loanRepo,
		lenderRepo: lenderRepo,
	}
}

// Execute performs the loan creation.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, input CreateLoanInput) (*CreateLoanOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidLoanAmount
	}

	if input.InterestRate != nil {
		rate := *input.InterestRate
		if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domainerror.ErrInvalidInterestRate
		}
	}

	if input.EndDate != nil && entity.DateOnly(*input.EndDate).Before(entity.DateOnly(input.IssueDate)) {
		return nil, domainerror.ErrInvalidLoanDates
	}

	if _, err := uc.lenderRepo.FindByID(ctx, input.LenderID); err != nil {
		return nil, err
	}

	loan := entity.NewLoan(input.LenderID, input.Amount, input.InterestRate, input.IssueDate, input.EndDate)

	if err := uc.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	return &CreateLoanOutput{Loan: loan}, nil
}
