// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// invalidateForecast drops cached forecast balances after a write.
func invalidateForecast(ctx context.Context, cache adapter.ForecastCache) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		slog.Debug("Failed to invalidate forecast cache", "error", err)
	}
}

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date        time.Time
	Amount      decimal.Decimal
	Kind        entity.TransactionKind
	CategoryID  uuid.UUID
	Description string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	cache           adapter.ForecastCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	cache adapter.ForecastCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		cache:           cache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.ErrInvalidTransactionAmount
	}
	if !isValidKind(input.Kind) {
		return nil, domainerror.ErrInvalidTransactionKind
	}

	category, err := uc.categoryRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if string(category.Kind) != string(input.Kind) {
		return nil, domainerror.ErrTransactionKindMismatch
	}

	transaction := entity.NewTransaction(
		input.Date,
		input.Amount,
		input.Kind,
		input.CategoryID,
		input.Description,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	invalidateForecast(ctx, uc.cache)

	return &CreateTransactionOutput{Transaction: transaction}, nil
}

// isValidKind validates the transaction kind.
func isValidKind(kind entity.TransactionKind) bool {
	return kind == entity.TransactionKindExpense || kind == entity.TransactionKindIncome
}
