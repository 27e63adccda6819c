// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of transaction (expense or income).
type TransactionKind string

const (
	TransactionKindExpense TransactionKind = "expense"
	TransactionKindIncome  TransactionKind = "income"
)

// Transaction represents a realized cash flow entry in the ledger.
// Amount is always positive; the kind determines the sign when aggregating.
type Transaction struct {
	ID          uuid.UUID
	Date        time.Time
	Amount      decimal.Decimal
	Kind        TransactionKind
	CategoryID  uuid.UUID
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	date time.Time,
	amount decimal.Decimal,
	kind TransactionKind,
	categoryID uuid.UUID,
	description string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		Date:        DateOnly(date),
		Amount:      amount,
		Kind:        kind,
		CategoryID:  categoryID,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SignedAmount returns the amount signed by kind: income positive,
// expense negative.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == TransactionKindExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TransactionWithCategory represents a transaction with its category.
type TransactionWithCategory struct {
	Transaction *Transaction
	Category    *Category
}

// TransactionTotals represents aggregated totals over a set of transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// DateOnly truncates t to a UTC calendar date. All obligation and ledger
// dates are stored at day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
