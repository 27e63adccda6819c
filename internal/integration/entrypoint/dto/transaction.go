// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cashplan/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Date        string `json:"date" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Kind        string `json:"kind" binding:"required,oneof=expense income"`
	CategoryID  string `json:"category_id" binding:"required,uuid"`
	Description string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// UpdateTransactionRequest represents the request body for transaction update.
// Absent fields keep their stored values.
type UpdateTransactionRequest struct {
	Date        *string `json:"date,omitempty"`
	Amount      *string `json:"amount,omitempty"`
	CategoryID  *string `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Description *string `json:"description,omitempty" binding:"omitempty,max=255"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Amount      string    `json:"amount"`
	Kind        string    `json:"kind"`
	CategoryID  string    `json:"category_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse     `json:"transactions"`
	Totals       TransactionTotalsResponse `json:"totals"`
}

// ToTransactionResponse converts a domain Transaction entity to a
// TransactionResponse DTO.
func ToTransactionResponse(transaction *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID.String(),
		Date:        FormatDate(transaction.Date),
		Amount:      transaction.Amount.String(),
		Kind:        string(transaction.Kind),
		CategoryID:  transaction.CategoryID.String(),
		Description: transaction.Description,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// ToTransactionListResponse converts domain transactions and totals to a list
// response.
func ToTransactionListResponse(transactions []*entity.Transaction, totals *entity.TransactionTotals) TransactionListResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = ToTransactionResponse(t)
	}
	return TransactionListResponse{
		Transactions: responses,
		Totals: TransactionTotalsResponse{
			IncomeTotal:  totals.IncomeTotal.String(),
			ExpenseTotal: totals.ExpenseTotal.String(),
			NetTotal:     totals.NetTotal.String(),
		},
	}
}
