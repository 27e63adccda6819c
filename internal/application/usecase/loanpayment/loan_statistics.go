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

// LoanStatisticsInput represents the input for the loan statistics query.
type LoanStatisticsInput struct {
	LoanID uuid.UUID
}

// LoanStatisticsOutput represents interest statistics over a loan's schedule.
// OverpaymentPercent is total scheduled interest relative to the principal,
// rounded to two decimal places.
type LoanStatisticsOutput struct {
	TotalInterest      decimal.Decimal
	PaidInterest       decimal.Decimal
	OverpaymentPercent decimal.Decimal
}

// LoanStatisticsUseCase computes interest statistics for a loan. Pure query.
type LoanStatisticsUseCase struct {
	loanRepo    adapter.LoanRepository
	paymentRepo adapter.LoanPaymentRepository
}

// NewLoanStatisticsUseCase creates a new LoanStatisticsUseCase instance.
func NewLoanStatisticsUseCase(loanRepo adapter.LoanRepository, paymentRepo adapter.LoanPaymentRepository) *LoanStatisticsUseCase {
	return &LoanStatisticsUseCase{
		loanRepo:    loanRepo,
		paymentRepo: paymentRepo,
	}
}

// Execute computes the statistics.
func (uc *LoanStatisticsUseCase) Execute(ctx context.Context, input LoanStatisticsInput) (*LoanStatisticsOutput, error) {
	loan, err := uc.loanRepo.FindByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.FindByLoan(ctx, input.LoanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load loan payments: %w", err)
	}

	stats := entity.ComputeLoanStatistics(loan, payments)

	return &LoanStatisticsOutput{
		TotalInterest:      stats.TotalInterest,
		PaidInterest:       stats.PaidInterest,
		OverpaymentPercent: stats.OverpaymentPercent,
	}, nil
}
