// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PendingPaymentPriority represents the urgency of a pending payment.
type PendingPaymentPriority string

const (
	PendingPaymentPriorityLow      PendingPaymentPriority = "low"
	PendingPaymentPriorityMedium   PendingPaymentPriority = "medium"
	PendingPaymentPriorityHigh     PendingPaymentPriority = "high"
	PendingPaymentPriorityCritical PendingPaymentPriority = "critical"
)

// PendingPaymentStatus represents the lifecycle state of a pending payment.
type PendingPaymentStatus string

const (
	PendingPaymentStatusActive    PendingPaymentStatus = "active"
	PendingPaymentStatusExecuted  PendingPaymentStatus = "executed"
	PendingPaymentStatusCancelled PendingPaymentStatus = "cancelled"
)

// PendingPayment represents a deferred obligation with no fixed recurrence:
// something that must be paid, optionally by a planned date.
type PendingPayment struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	CategoryID    uuid.UUID
	Description   string
	Priority      PendingPaymentPriority
	PlannedDate   *time.Time
	Status        PendingPaymentStatus
	TransactionID *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPendingPayment creates a new PendingPayment entity in the active state.
func NewPendingPayment(
	amount decimal.Decimal,
	categoryID uuid.UUID,
	description string,
	priority PendingPaymentPriority,
	plannedDate *time.Time,
) *PendingPayment {
	now := time.Now().UTC()

	if plannedDate != nil {
		d := DateOnly(*plannedDate)
		plannedDate = &d
	}

	return &PendingPayment{
		ID:          uuid.New(),
		Amount:      amount,
		CategoryID:  categoryID,
		Description: description,
		Priority:    priority,
		PlannedDate: plannedDate,
		Status:      PendingPaymentStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsTerminal reports whether the payment can no longer change state.
func (p *PendingPayment) IsTerminal() bool {
	return p.Status == PendingPaymentStatusExecuted || p.Status == PendingPaymentStatusCancelled
}
