// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/domain/entity"
)

// LoanRepository defines the interface for loan persistence operations.
type LoanRepository interface {
	// Create creates a new loan.
	Create(ctx context.Context, loan *entity.Loan) error

	// FindByID retrieves a loan by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error)

	// FindByIDWithLender retrieves a loan with its lender by ID.
	FindByIDWithLender(ctx context.Context, id uuid.UUID) (*entity.LoanWithLender, error)

	// List retrieves all loans, optionally filtered by status.
	List(ctx context.Context, status *entity.LoanStatus) ([]*entity.Loan, error)

	// Update updates an existing loan.
	Update(ctx context.Context, loan *entity.Loan) error

	// Delete deletes a loan, cascading to its loan payments.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountActiveByLender counts the active loans of a lender.
	CountActiveByLender(ctx context.Context, lenderID uuid.UUID) (int64, error)

	// LinkDisbursement atomically creates the disbursement transaction and
	// records the set-once link on the loan. Fails without side effects when
	// the loan already has a disbursement transaction.
	LinkDisbursement(ctx context.Context, loan *entity.Loan, transaction *entity.Transaction) error

	// SettleFullRepayment atomically records the repayment transaction,
	// cancels every non-terminal payment of the loan, and marks the loan paid
	// off. Returns the number of cancelled payments.
	SettleFullRepayment(ctx context.Context, loan *entity.Loan, transaction *entity.Transaction) (int64, error)
}
