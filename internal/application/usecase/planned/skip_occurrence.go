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

// SkipOccurrenceInput represents the input for skipping one occurrence.
type SkipOccurrenceInput struct {
	PlannedTransactionID uuid.UUID
	Date                 time.Time
}

// SkipOccurrenceUseCase marks one pending occurrence as skipped so it no
// longer counts as an outstanding obligation.
type SkipOccurrenceUseCase struct {
	plannedRepo adapter.PlannedTransactionRepository
	cache       adapter.ForecastCache
}

// NewSkipOccurrenceUseCase creates a new SkipOccurrenceUseCase instance.
func NewSkipOccurrenceUseCase(plannedRepo adapter.PlannedTransactionRepository, cache adapter.ForecastCache) *SkipOccurrenceUseCase {
	return &SkipOccurrenceUseCase{
		plannedRepo: plannedRepo,
		cache:       cache,
	}
}

// Execute performs the skip.
func (uc *SkipOccurrenceUseCase) Execute(ctx context.Context, input SkipOccurrenceInput) (*entity.OccurrenceRecord, error) {
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

	record := entity.NewOccurrenceRecord(planned.ID, date, entity.OccurrenceStatusSkipped, nil)

	if err := uc.plannedRepo.CreateRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record skipped occurrence: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return record, nil
}

// UnskipOccurrenceInput represents the input for unskipping one occurrence.
type UnskipOccurrenceInput struct {
	PlannedTransactionID uuid.UUID
	Date                 time.Time
}

// UnskipOccurrenceUseCase reverts a skipped occurrence to pending. Executed
// occurrences cannot be unskipped; the executed link is immutable.
type UnskipOccurrenceUseCase struct {
	plannedRepo adapter.PlannedTransactionRepository
	cache       adapter.ForecastCache
}

// NewUnskipOccurrenceUseCase creates a new UnskipOccurrenceUseCase instance.
func NewUnskipOccurrenceUseCase(plannedRepo adapter.PlannedTransactionRepository, cache adapter.ForecastCache) *UnskipOccurrenceUseCase {
	return &UnskipOccurrenceUseCase{
		plannedRepo: plannedRepo,
		cache:       cache,
	}
}

// Execute performs the unskip.
func (uc *UnskipOccurrenceUseCase) Execute(ctx context.Context, input UnskipOccurrenceInput) error {
	date := entity.DateOnly(input.Date)

	record, err := uc.plannedRepo.FindRecord(ctx, input.PlannedTransactionID, date)
	if err != nil {
		if errors.Is(err, domainerror.ErrOccurrenceRecordNotFound) {
			return domainerror.ErrOccurrenceNotSkipped
		}
		return err
	}
	if record.Status != entity.OccurrenceStatusSkipped {
		return domainerror.ErrOccurrenceNotSkipped
	}

	if err := uc.plannedRepo.DeleteRecord(ctx, input.PlannedTransactionID, date); err != nil {
		return fmt.Errorf("failed to delete occurrence record: %w", err)
	}

	invalidateForecast(ctx, uc.cache)
	return nil
}
