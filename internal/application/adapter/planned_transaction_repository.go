// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/domain/entity"
)

// PlannedTransactionRepository defines the interface for planned transaction
// and occurrence record persistence operations.
type PlannedTransactionRepository interface {
	// Create creates a new planned transaction.
	Create(ctx context.Context, planned *entity.PlannedTransaction) error

	// FindByID retrieves a planned transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PlannedTransaction, error)

	// List retrieves planned transactions, optionally restricted to active ones.
	List(ctx context.Context, activeOnly bool) ([]*entity.PlannedTransaction, error)

	// Update updates an existing planned transaction.
	Update(ctx context.Context, planned *entity.PlannedTransaction) error

	// Delete deletes a planned transaction and its occurrence records.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindRecords retrieves the occurrence records of the given planned
	// transactions with dates inside [start, end].
	FindRecords(ctx context.Context, plannedIDs []uuid.UUID, start, end time.Time) ([]*entity.OccurrenceRecord, error)

	// FindRecord retrieves the occurrence record for one date, or a not-found
	// error when the occurrence has never been executed or skipped.
	FindRecord(ctx context.Context, plannedID uuid.UUID, date time.Time) (*entity.OccurrenceRecord, error)

	// CreateRecord creates an occurrence record.
	CreateRecord(ctx context.Context, record *entity.OccurrenceRecord) error

	// CreateRecordWithTransaction atomically creates the ledger transaction
	// and the executed occurrence record linking to it. Fails without side
	// effects when a record for the same occurrence already exists.
	CreateRecordWithTransaction(ctx context.Context, record *entity.OccurrenceRecord, transaction *entity.Transaction) error

	// DeleteRecord removes the occurrence record for one date.
	DeleteRecord(ctx context.Context, plannedID uuid.UUID, date time.Time) error
}
