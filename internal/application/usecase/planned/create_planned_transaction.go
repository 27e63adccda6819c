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

// CreatePlannedTransactionInput represents the input for creating a planned
// transaction.
type CreatePlannedTransactionInput struct {
	Amount     decimal.Decimal
	Kind       entity.TransactionKind
	CategoryID uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	Rule       recurrence.Rule
}

// CreatePlannedTransactionOutput represents the output of creating a planned
// transaction.
type CreatePlannedTransactionOutput struct {
	Planned *entity.PlannedTransaction
}

// CreatePlannedTransactionUseCase handles planned transaction creation.
type CreatePlannedTransactionUseCase struct {
	plannedRepo  adapter.PlannedTransactionRepository
	categoryRepo adapter.CategoryRepository
	cache        adapter.ForecastCache
}

// NewCreatePlannedTransactionUseCase creates a new CreatePlannedTransactionUseCase instance.
func NewCreatePlannedTransactionUseCase(
	plannedRepo adapter.PlannedTransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *CreatePlannedTransactionUseCase {
	return &CreatePlannedTransactionUseCase{
		plannedRepo:  plannedRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute performs the creation.
func (uc *CreatePlannedTransactionUseCase) Execute(ctx context.Context, input CreatePlannedTransactionInput) (*CreatePlannedTransactionOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidPlannedAmount
	}
	if input.Kind != entity.TransactionKindExpense && input.Kind != entity.TransactionKindIncome {
		return nil, domainerror.ErrInvalidTransactionKind
	}
	if input.EndDate != nil && entity.DateOnly(*input.EndDate).Before(entity.DateOnly(input.StartDate)) {
		return nil, domainerror.ErrInvalidPlannedDates
	}
	if err := input.Rule.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	planned := entity.NewPlannedTransaction(
		input.Amount,
		input.Kind,
		input.CategoryID,
		input.StartDate,
		input.EndDate,
		input.Rule,
	)

	if err := uc.plannedRepo.Create(ctx, planned); err != nil {
		return nil, fmt.Errorf("failed to create planned transaction: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return &CreatePlannedTransactionOutput{Planned: planned}, nil
}
