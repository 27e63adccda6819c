// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Lender represents a party that has issued one or more loans.
type Lender struct {
	ID          uuid.UUID
	Name        string
	ContactInfo string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLender creates a new Lender entity.
func NewLender(name, contactInfo string) *Lender {
	now := time.Now().UTC()

	return &Lender{
		ID:          uuid.New(),
		Name:        name,
		ContactInfo: contactInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// LoanStatus represents the lifecycle state of a loan.
type LoanStatus string

const (
	LoanStatusActive  LoanStatus = "active"
	LoanStatusPaidOff LoanStatus = "paid_off"
)

// Loan represents borrowed money that is repaid through scheduled
// LoanPayments. InterestRate is an annual percentage in [0, 100].
type Loan struct {
	ID                        uuid.UUID
	LenderID                  uuid.UUID
	Amount                    decimal.Decimal
	InterestRate              *decimal.Decimal
	IssueDate                 time.Time
	EndDate                   *time.Time
	Status                    LoanStatus
	DisbursementTransactionID *uuid.UUID
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// NewLoan creates a new Loan entity in the active state.
func NewLoan(
	lenderID uuid.UUID,
	amount decimal.Decimal,
	interestRate *decimal.Decimal,
	issueDate time.Time,
	endDate *time.Time,
) *Loan {
	now := time.Now().UTC()

	if endDate != nil {
		d := DateOnly(*endDate)
		endDate = &d
	}

	return &Loan{
		ID:           uuid.New(),
		LenderID:     lenderID,
		Amount:       amount,
		InterestRate: interestRate,
		IssueDate:    DateOnly(issueDate),
		EndDate:      endDate,
		Status:       LoanStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// LoanBalance represents the outstanding balance of a loan.
type LoanBalance struct {
	PrincipalBalance decimal.Decimal
	AccruedInterest  decimal.Decimal
	TotalBalance     decimal.Decimal
}

// LoanStatistics represents interest statistics over a loan's schedule.
type LoanStatistics struct {
	TotalInterest      decimal.Decimal
	PaidInterest       decimal.Decimal
	OverpaymentPercent decimal.Decimal
}

// LoanWithLender represents a loan with its lender.
type LoanWithLender struct {
	Loan   *Loan
	Lender *Lender
}
