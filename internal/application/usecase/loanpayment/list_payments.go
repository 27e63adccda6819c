// Package loanpayment contains loan payment lifecycle use cases.
package loanpayment

import (
	"context"
	"fmt"

	"github.com/cashplan/backend/internal/application/adapter"
)

// ListPaymentsInput represents the input for listing loan payments.
type ListPaymentsInput struct {
	Filter adapter.LoanPaymentFilter
}

// ListPaymentsOutput represents the output of listing loan payments.
type ListPaymentsOutput struct {
	Payments []*LoanPaymentOutput
}

// ListPaymentsUseCase lists loan payments by loan, status or date range.
type ListPaymentsUseCase struct {
	paymentRepo adapter.LoanPaymentRepository
}

// NewListPaymentsUseCase creates a new ListPaymentsUseCase instance.
func NewListPaymentsUseCase(paymentRepo adapter.LoanPaymentRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo}
}

// Execute performs the listing.
func (uc *ListPaymentsUseCase) Execute(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	payments, err := uc.paymentRepo.FindByFilter(ctx, input.Filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list loan payments: %w", err)
	}

	outputs := make([]*LoanPaymentOutput, len(payments))
	for i, p := range payments {
		outputs[i] = ToLoanPaymentOutput(p)
	}

	return &ListPaymentsOutput{Payments: outputs}, nil
}
