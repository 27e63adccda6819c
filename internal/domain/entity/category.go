// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryKind represents the kind of category (expense or income).
type CategoryKind string

const (
	CategoryKindExpense CategoryKind = "expense"
	CategoryKindIncome  CategoryKind = "income"
)

// Names of the system categories seeded at migration time. Loan payment and
// disbursement transactions are tagged with these.
const (
	SystemCategoryLoanPayments      = "Loan payments"
	SystemCategoryLoanDisbursements = "Loan disbursements"
)

// Category represents a transaction category in the ledger.
// System categories are seeded at migration time and cannot be edited or deleted.
type Category struct {
	ID        uuid.UUID
	Name      string
	Kind      CategoryKind
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name string, kind CategoryKind, isSystem bool) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		IsSystem:  isSystem,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CategoryWithUsage represents a category with the number of transactions
// referencing it.
type CategoryWithUsage struct {
	Category         *Category
	TransactionCount int64
}
