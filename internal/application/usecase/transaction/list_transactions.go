// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
)

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	Totals       *entity.TransactionTotals
}

// ListTransactionsUseCase lists transactions with aggregated totals.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, filter adapter.TransactionFilter) (*ListTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Totals:       totals,
	}, nil
}
