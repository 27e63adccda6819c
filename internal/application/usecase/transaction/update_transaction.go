// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for updating a transaction.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	ID          uuid.UUID
	Date        *time.Time
	Amount      *decimal.Decimal
	CategoryID  *uuid.UUID
	Description *string
}

// UpdateTransactionUseCase handles explicit transaction edits.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.ForecastCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute performs the update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.Transaction, error) {
	transaction, err := uc.transactionRepo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, domainerror.ErrInvalidTransactionAmount
		}
		transaction.Amount = *input.Amount
	}

	if input.CategoryID != nil {
		category, err := uc.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if string(category.Kind) != string(transaction.Kind) {
			return nil, domainerror.ErrTransactionKindMismatch
		}
		transaction.CategoryID = *input.CategoryID
	}

	if input.Date != nil {
		transaction.Date = entity.DateOnly(*input.Date)
	}
	if input.Description != nil {
		transaction.Description = *input.Description
	}

	transaction.UpdatedAt = time.Now().UTC()

	if err := uc.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return transaction, nil
}

// DeleteTransactionUseCase handles explicit transaction deletion.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.ForecastCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository, cache adapter.ForecastCache) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
	}
}

// Execute performs the deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	if _, err := uc.transactionRepo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	invalidateForecast(ctx, uc.cache)
	return nil
}
