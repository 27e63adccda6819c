// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/domain/entity"
)

// LoanPaymentFilter defines filter options for listing loan payments.
type LoanPaymentFilter struct {
	LoanID    *uuid.UUID
	Statuses  []entity.LoanPaymentStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// LoanPaymentRepository defines the interface for loan payment persistence
// operations. Execute and Cancel are atomic read-modify-writes: the current
// status is re-checked inside the write transaction so that two callers
// racing on the same payment cannot both succeed.
type LoanPaymentRepository interface {
	// Create creates a new loan payment.
	Create(ctx context.Context, payment *entity.LoanPayment) error

	// FindByID retrieves a loan payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LoanPayment, error)

	// FindByLoan retrieves all payments of a loan ordered by scheduled date.
	FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*entity.LoanPayment, error)

	// FindByFilter retrieves loan payments matching the filter, ordered by
	// scheduled date ascending.
	FindByFilter(ctx context.Context, filter LoanPaymentFilter) ([]*entity.LoanPayment, error)

	// MarkOverdue promotes every pending payment scheduled strictly before
	// asOf to overdue in one conditional update. Returns the number of rows
	// transitioned; already overdue or terminal payments are untouched, so
	// the operation is idempotent.
	MarkOverdue(ctx context.Context, asOf time.Time) (int64, error)

	// ExecuteAndLink atomically creates the ledger transaction and applies
	// the executed state (status, executed date/amount, overdue days, link)
	// carried by payment. Fails without side effects when the stored payment
	// is no longer pending or overdue.
	ExecuteAndLink(ctx context.Context, payment *entity.LoanPayment, transaction *entity.Transaction) error

	// Cancel atomically moves the payment to cancelled. Fails when the stored
	// payment is no longer pending or overdue.
	Cancel(ctx context.Context, id uuid.UUID) (*entity.LoanPayment, error)
}
