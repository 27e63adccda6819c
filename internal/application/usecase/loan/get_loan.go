// Package loan contains lender and loan use cases.
package loan

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
)

// GetLoanOutput represents a loan with its lender and outstanding balance.
type GetLoanOutput struct {
	Loan    *entity.Loan
	Lender  *entity.Lender
	Balance *entity.LoanBalance
}

// GetLoanUseCase retrieves a loan with its lender and computed balance.
type GetLoanUseCase struct {
	loanRepo    adapter.LoanRepository
	paymentRepo adapter.LoanPaymentRepository
}

// NewGetLoanUseCase creates a new GetLoanUseCase instance.
func NewGetLoanUseCase(loanRepo adapter.LoanRepository, paymentRepo adapter.LoanPaymentRepository) *GetLoanUseCase {
	return &GetLoanUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

// Execute retrieves the loan.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID uuid.UUID) (*GetLoanOutput, error) {
	withLender, err := uc.loanRepo.FindByIDWithLender(ctx, loanID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.FindByLoan(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan payments: %w", err)
	}

	return &GetLoanOutput{
		Loan:    withLender.Loan,
		Lender:  withLender.Lender,
		Balance: entity.ComputeLoanBalance(withLender.Loan, payments),
	}, nil
}

// ListLoansUseCase lists loans, optionally filtered by status.
type ListLoansUseCase struct {
	loanRepo adapter.LoanRepository
}

// NewListLoansUseCase creates a new ListLoansUseCase instance.
func NewListLoansUseCase(loanRepo adapter.LoanRepository) *ListLoansUseCase {
	return &ListLoansUseCase{loanRepo: loanRepo}
}

// Execute lists the loans.
func (uc *ListLoansUseCase) Execute(ctx context.Context, status *entity.LoanStatus) ([]*entity.Loan, error) {
	loans, err := uc.loanRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// DeleteLoanUseCase deletes a loan; the repository cascades the deletion to
// the loan's payments.
type DeleteLoanUseCase struct {
	loanRepo adapter.LoanRepository
	cache    adapter.ForecastCache
}

// NewDeleteLoanUseCase creates a new DeleteLoanUseCase instance.
func NewDeleteLoanUseCase(loanRepo adapter.LoanRepository, cache adapter.ForecastCache) *DeleteLoanUseCase {
	return &DeleteLoanUseCase{
		loanRepo: loanRepo,
		cache:    cache,
	}
}

// Execute performs the deletion.
func (uc *DeleteLoanUseCase) Execute(ctx context.Context, loanID uuid.UUID) error {
	if _, err := uc.loanRepo.FindByID(ctx, loanID); err != nil {
		return err
	}

	if err := uc.loanRepo.Delete(ctx, loanID); err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	invalidateForecast(ctx, uc.cache)
	return nil
}
