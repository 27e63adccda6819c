// Package planned contains planned transaction and occurrence use cases.
package planned

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/domain/recurrence"
)

// UpdatePlannedTransactionInput represents the input for updating a planned
// transaction. Nil fields are left unchanged.
type UpdatePlannedTransactionInput struct {
	ID         uuid.UUID
	Amount     *decimal.Decimal
	CategoryID *uuid.UUID
	EndDate    *time.Time
	Rule       *recurrence.Rule
	Active     *bool
}

// UpdatePlannedTransactionUseCase handles planned transaction updates.
type UpdatePlannedTransactionUseCase struct {
	plannedRepo  adapter.PlannedTransactionRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.ForecastCache
}

// NewUpdatePlannedTransactionUseCase creates a new UpdatePlannedTransactionUseCase instance.
func NewUpdatePlannedTransactionUseCase(
	plannedRepo adapter.PlannedTransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *UpdatePlannedTransactionUseCase {
	return &UpdatePlannedTransactionUseCase{
		plannedRepo:  plannedRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the update.
func (uc *UpdatePlannedTransactionUseCase) Execute(ctx context.Context, input UpdatePlannedTransactionInput) (*entity.PlannedTransaction, error) {
	planned, err := uc.plannedRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.ErrInvalidPlannedAmount
		}
		planned.Amount = *input.Amount
	}

	if input.CategoryID != nil {
		if _, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
		planned.CategoryID = *input.CategoryID
	}

	if input.EndDate != nil {
		end := entity.DateOnly(*input.EndDate)
		if end.Before(planned.StartDate) {
			return nil, domainerror.ErrInvalidPlannedDates
		}
		planned.EndDate = &end
	}

	if input.Rule != nil {
		if err := input.Rule.Validate(); err != nil {
			return nil, err
		}
		planned.Rule = *input.Rule
	}

	if input.Active != nil {
		planned.Active = *input.Active
	}

	planned.UpdatedAt = time.Now().UTC()

	if err := uc.plannedRepo.Update(ctx, planned); err != nil {
		return nil, fmt.Errorf("failed to update planned transaction: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return planned, nil
}

// DeletePlannedTransactionUseCase deletes a planned transaction along with
// its occurrence records.
type DeletePlannedTransactionUseCase struct {
	plannedRepo adapter.PlannedTransactionRepository
	cache       adapter.ForecastCache
}

// NewDeletePlannedTransactionUseCase creates a new DeletePlannedTransactionUseCase instance.
func NewDeletePlannedTransactionUseCase(plannedRepo adapter.PlannedTransactionRepository, cache adapter.ForecastCache) *DeletePlannedTransactionUseCase {
	return &DeletePlannedTransactionUseCase{
		plannedRepo: plannedRepo,
		cache:       cache,
	}
}

// Execute performs the deletion.
func (uc *DeletePlannedTransactionUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.plannedRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := uc.plannedRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete planned transaction: %w", err)
	}

	invalidateForecast(ctx, uc.cache)
	return nil
}

// ListPlannedTransactionsUseCase lists planned transactions.
type ListPlannedTransactionsUseCase struct {
	plannedRepo adapter.PlannedTransactionRepository
}

// NewListPlannedTransactionsUseCase creates a new ListPlannedTransactionsUseCase instance.
func NewListPlannedTransactionsUseCase(plannedRepo adapter.PlannedTransactionRepository) *ListPlannedTransactionsUseCase {
	return &ListPlannedTransactionsUseCase{plannedRepo: plannedRepo}
}

// Execute lists planned transactions, optionally restricted to active ones.
func (uc *ListPlannedTransactionsUseCase) Execute(ctx context.Context, activeOnly bool) ([]*entity.PlannedTransaction, error) {
	planned, err := uc.plannedRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned transactions: %w", err)
	}
	return planned, nil
}
