// Package loanpayment contains loan payment lifecycle use cases.
package loanpayment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
)

// LoanBalanceInput represents the input for the loan balance query.
type LoanBalanceInput struct {
	LoanID uuid.UUID
}

// LoanBalanceOutput represents the outstanding balance of a loan.
type LoanBalanceOutput struct {
	PrincipalBalance decimal.Decimal
	AccruedInterest  decimal.Decimal
	TotalBalance     decimal.Decimal
}

// LoanBalanceUseCase computes the outstanding balance of a loan from its
// payment schedule. Pure query, no state change.
type LoanBalanceUseCase struct {
	loanRepo    adapter.LoanRepository
	paymentRepo adapter.LoanPaymentRepository
}

// NewLoanBalanceUseCase creates a new LoanBalanceUseCase instance.
func NewLoanBalanceUseCase(loanRepo adapter.LoanRepository, paymentRepo adapter.LoanPaymentRepository) *LoanBalanceUseCase {
	return &LoanBalanceUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

// Execute computes the balance.
func (uc *LoanBalanceUseCase) Execute(ctx context.Context, input LoanBalanceInput) (*LoanBalanceOutput, error) {
	loan, err := uc.loanRepo.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.FindByLoan(ctx, input.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan payments: %w", err)
	}

	balance := entity.ComputeLoanBalance(loan, payments)

	return &LoanBalanceOutput{
		PrincipalBalance: balance.PrincipalBalance,
		AccruedInterest:  balance.AccruedInterest,
		TotalBalance:     balance.TotalBalance,
	}, nil
}
