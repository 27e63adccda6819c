// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cashplan/backend/internal/domain/entity"
)

// CreatePendingPaymentRequest represents the request body for pending payment
// creation.
type CreatePendingPaymentRequest struct {
	Amount      string  `json:"amount" binding:"required"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Description string  `json:"description,omitempty" binding:"omitempty,max=255"`
	Priority    string  `json:"priority" binding:"required,oneof=low medium high critical"`
	PlannedDate *string `json:"planned_date,omitempty"`
}

// ExecutePendingPaymentRequest represents the request body for pending
// payment execution.
type ExecutePendingPaymentRequest struct {
	Date string `json:"date" binding:"required"`
}

// PendingPaymentResponse represents a pending payment in API responses.
type PendingPaymentResponse struct {
	ID            string    `json:"id"`
	Amount        string    `json:"amount"`
	CategoryID    string    `json:"category_id"`
	Description   string    `json:"description"`
	Priority      string    `json:"priority"`
	PlannedDate   *string   `json:"planned_date,omitempty"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PendingPaymentListResponse represents the response for listing pending
// payments.
type PendingPaymentListResponse struct {
	PendingPayments []PendingPaymentResponse `json:"pending_payments"`
}

// ToPendingPaymentResponse converts a domain PendingPayment entity to its
// response DTO.
func ToPendingPaymentResponse(payment *entity.PendingPayment) PendingPaymentResponse {
	response := PendingPaymentResponse{
		ID:          payment.ID.String(),
		Amount:      payment.Amount.String(),
		CategoryID:  payment.CategoryID.String(),
		Description: payment.Description,
		Priority:    string(payment.Priority),
		PlannedDate: FormatDatePtr(payment.PlannedDate),
		Status:      string(payment.Status),
		CreatedAt:   payment.CreatedAt,
		UpdatedAt:   payment.UpdatedAt,
	}
	if payment.TransactionID != nil {
		id := payment.TransactionID.String()
		response.TransactionID = &id
	}
	return response
}

// ToPendingPaymentListResponse converts domain pending payments to a list
// response.
func ToPendingPaymentListResponse(payments []*entity.PendingPayment) PendingPaymentListResponse {
	responses := make([]PendingPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToPendingPaymentResponse(p)
	}
	return PendingPaymentListResponse{PendingPayments: responses}
}
