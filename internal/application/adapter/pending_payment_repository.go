// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/domain/entity"
)

// PendingPaymentFilter defines filter options for listing pending payments.
type PendingPaymentFilter struct {
	Status         *entity.PendingPaymentStatus
	Priority       *entity.PendingPaymentPriority
	HasPlannedDate *bool
}

// PendingPaymentRepository defines the interface for pending payment
// persistence operations.
type PendingPaymentRepository interface {
	// Create creates a new pending payment.
	Create(ctx context.Context, payment *entity.PendingPayment) error

	// FindByID retrieves a pending payment by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PendingPayment, error)

	// FindByFilter retrieves pending payments matching the filter, ordered by
	// planned date ascending with undated payments last.
	FindByFilter(ctx context.Context, filter PendingPaymentFilter) ([]*entity.PendingPayment, error)

	// Cancel moves an active payment to cancelled without creating a
	// transaction. The status is re-checked inside the write, so a payment
	// settled by a concurrent caller is never overwritten.
	Cancel(ctx context.Context, id uuid.UUID) (*entity.PendingPayment, error)

	// ExecuteAndLink atomically creates the ledger transaction and moves the
	// payment to executed with the transaction linked. The status is
	// re-checked inside the write transaction; a payment that is no longer
	// active fails the whole operation.
	ExecuteAndLink(ctx context.Context, payment *entity.PendingPayment, transaction *entity.Transaction) error

	// Delete deletes a pending payment.
	Delete(ctx context.Context, id uuid.UUID) error
}
