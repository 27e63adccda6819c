// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanPaymentStatus represents the lifecycle state of a scheduled loan payment.
//
// Transitions are monotonic:
//
//	pending -> overdue -> executed_late
//	pending -> executed
//	pending/overdue -> cancelled
//
// executed, executed_late and cancelled are terminal.
type LoanPaymentStatus string

const (
	LoanPaymentStatusPending      LoanPaymentStatus = "pending"
	LoanPaymentStatusOverdue      LoanPaymentStatus = "overdue"
	LoanPaymentStatusExecuted     LoanPaymentStatus = "executed"
	LoanPaymentStatusExecutedLate LoanPaymentStatus = "executed_late"
	LoanPaymentStatusCancelled    LoanPaymentStatus = "cancelled"
)

// LoanPayment represents one scheduled payment of a loan's repayment plan.
type LoanPayment struct {
	ID              uuid.UUID
	LoanID          uuid.UUID
	ScheduledDate   time.Time
	PrincipalAmount decimal.Decimal
	InterestAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          LoanPaymentStatus
	ExecutedDate    *time.Time
	ExecutedAmount  *decimal.Decimal
	TransactionID   *uuid.UUID
	OverdueDays     int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewLoanPayment creates a new LoanPayment entity in the pending state.
// TotalAmount is always principal + interest.
func NewLoanPayment(
	loanID uuid.UUID,
	scheduledDate time.Time,
	principalAmount decimal.Decimal,
	interestAmount decimal.Decimal,
) *LoanPayment {
	now := time.Now().UTC()

	return &LoanPayment{
		ID:              uuid.New(),
		LoanID:          loanID,
		ScheduledDate:   DateOnly(scheduledDate),
		PrincipalAmount: principalAmount,
		InterestAmount:  interestAmount,
		TotalAmount:     principalAmount.Add(interestAmount),
		Status:          LoanPaymentStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsTerminal reports whether the payment can no longer change state.
func (p *LoanPayment) IsTerminal() bool {
	switch p.Status {
	case LoanPaymentStatusExecuted, LoanPaymentStatusExecutedLate, LoanPaymentStatusCancelled:
		return true
	}
	return false
}

// IsOpen reports whether the payment still counts as an outstanding
// obligation (pending or overdue).
func (p *LoanPayment) IsOpen() bool {
	return p.Status == LoanPaymentStatusPending || p.Status == LoanPaymentStatusOverdue
}

// IsExecuted reports whether the payment was executed, on time or late.
func (p *LoanPayment) IsExecuted() bool {
	return p.Status == LoanPaymentStatusExecuted || p.Status == LoanPaymentStatusExecutedLate
}

// OverdueDaysBetween returns the number of whole days the executed date lies
// past the scheduled date, never negative.
func OverdueDaysBetween(scheduledDate, executedDate time.Time) int {
	days := int(DateOnly(executedDate).Sub(DateOnly(scheduledDate)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ComputeLoanBalance derives the outstanding balance of a loan from its full
// payment schedule. Executed principal only counts once the payment carries a
// linked ledger transaction.
func ComputeLoanBalance(loan *Loan, payments []*LoanPayment) *LoanBalance {
	paidPrincipal := decimal.Zero
	totalInterest := decimal.Zero
	paidInterest := decimal.Zero

	for _, p := range payments {
		totalInterest = totalInterest.Add(p.InterestAmount)
		if p.IsExecuted() {
			paidInterest = paidInterest.Add(p.InterestAmount)
			if p.TransactionID != nil {
				paidPrincipal = paidPrincipal.Add(p.PrincipalAmount)
			}
		}
	}

	principalBalance := loan.Amount.Sub(paidPrincipal)
	if principalBalance.IsNegative() {
		principalBalance = decimal.Zero
	}

	accruedInterest := totalInterest.Sub(paidInterest)

	totalBalance := principalBalance.Add(accruedInterest)
	if totalBalance.IsNegative() {
		totalBalance = decimal.Zero
	}

	return &LoanBalance{
		PrincipalBalance: principalBalance,
		AccruedInterest:  accruedInterest,
		TotalBalance:     totalBalance,
	}
}

// ComputeLoanStatistics derives interest statistics from a loan's full
// payment schedule.
func ComputeLoanStatistics(loan *Loan, payments []*LoanPayment) *LoanStatistics {
	totalInterest := decimal.Zero
	paidInterest := decimal.Zero

	for _, p := range payments {
		totalInterest = totalInterest.Add(p.InterestAmount)
		if p.IsExecuted() {
			paidInterest = paidInterest.Add(p.InterestAmount)
		}
	}

	overpayment := decimal.Zero
	if loan.Amount.IsPositive() {
		overpayment = totalInterest.Div(loan.Amount).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &LoanStatistics{
		TotalInterest:      totalInterest,
		PaidInterest:       paidInterest,
		OverpaymentPercent: overpayment,
	}
}
