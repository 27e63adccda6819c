// Package planned contains planned transaction and occurrence use cases.
package planned

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// ExecuteOccurrenceInput represents the input for executing one occurrence.
type ExecuteOccurrenceInput struct {
	PlannedTransactionID uuid.UUID
	Date                 time.Time
}

// ExecuteOccurrenceOutput represents the output of executing one occurrence.
type ExecuteOccurrenceOutput struct {
	Occurrence  *entity.Occurrence
	Transaction *entity.Transaction
}

// ExecuteOccurrenceUseCase turns one pending occurrence into a realized
// ledger transaction and records the execution, atomically.
type ExecuteOccurrenceUseCase struct {
	plannedRepo adapter.PlannedTransactionRepository
	cache       adapter.ForecastCache
}

// NewExecuteOccurrenceUseCase creates a new ExecuteOccurrenceUseCase instance.
func NewExecuteOccurrenceUseCase(plannedRepo adapter.PlannedTransactionRepository, cache adapter.ForecastCache) *ExecuteOccurrenceUseCase {
	return &ExecuteOccurrenceUseCase{
		plannedRepo: plannedRepo,
		cache:       cache,
	}
}

// Execute performs the occurrence execution.
func (uc *ExecuteOccurrenceUseCase) Execute(ctx context.Context, input ExecuteOccurrenceInput) (*ExecuteOccurrenceOutput, error) {
	planned, err := uc.plannedRepo.FindByID(ctx, input.PlannedTransactionID)
	if err != nil {
		return nil, err
	}
	if !planned.Active {
		return nil, domainerror.ErrPlannedTransactionInactive
	}

	date := entity.DateOnly(input.Date)
	member, err := isOccurrenceDate(planned, date)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, domainerror.ErrOccurrenceNotInSeries
	}

	if _, err := uc.plannedRepo.FindRecord(ctx, planned.ID, date); err == nil {
		return nil, domainerror.ErrOccurrenceAlreadySettled
	} else if !errors.Is(err, domainerror.ErrOccurrenceRecordNotFound) {
		return nil, fmt.Errorf("failed to check occurrence record: %w", err)
	}

	transaction := entity.NewTransaction(
		date,
		planned.Amount,
		planned.Kind,
		planned.CategoryID,
		"Planned transaction",
	)

	record := entity.NewOccurrenceRecord(planned.ID, date, entity.OccurrenceStatusExecuted, &transaction.ID)

	// Atomic: the repository creates the transaction and the record together
	// and fails on a concurrent record for the same occurrence.
	if err := uc.plannedRepo.CreateRecordWithTransaction(ctx, record, transaction); err != nil {
		return nil, err
	}

	invalidateForecast(ctx, uc.cache)

	return &ExecuteOccurrenceOutput{
		Occurrence: &entity.Occurrence{
			PlannedTransactionID: planned.ID,
			Date:                 date,
			Amount:               planned.Amount,
			Kind:                 planned.Kind,
			CategoryID:           planned.CategoryID,
			Status:               entity.OccurrenceStatusExecuted,
			TransactionID:        &transaction.ID,
		},
		Transaction: transaction,
	}, nil
}
