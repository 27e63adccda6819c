// Package model defines database models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/domain/entity"
)

// PendingPaymentModel represents the pending_payments table.
type PendingPaymentModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description   string          `gorm:"type:varchar(255)"`
	Priority      string          `gorm:"type:varchar(10);not null;index"`
	PlannedDate   *time.Time      `gorm:"type:date;index"`
	Status        string          `gorm:"type:varchar(10);not null;index"`
	TransactionID *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	Category    *CategoryModel    `gorm:"foreignKey:CategoryID;references:ID"`
	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the PendingPaymentModel.
func (PendingPaymentModel) TableName() string {
	return "pending_payments"
}

// ToEntity converts a PendingPaymentModel to a domain PendingPayment entity.
func (m *PendingPaymentModel) ToEntity() *entity.PendingPayment {
	return &entity.PendingPayment{
		ID:            m.ID,
		Amount:        m.Amount,
		CategoryID:    m.CategoryID,
		Description:   m.Description,
		Priority:      entity.PendingPaymentPriority(m.Priority),
		PlannedDate:   m.PlannedDate,
		Status:        entity.PendingPaymentStatus(m.Status),
		TransactionID: m.TransactionID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// PendingPaymentFromEntity creates a PendingPaymentModel from a domain
// PendingPayment entity.
func PendingPaymentFromEntity(payment *entity.PendingPayment) *PendingPaymentModel {
	return &PendingPaymentModel{
		ID:            payment.ID,
		Amount:        payment.Amount,
		CategoryID:    payment.CategoryID,
		Description:   payment.Description,
		Priority:      string(payment.Priority),
		PlannedDate:   payment.PlannedDate,
		Status:        string(payment.Status),
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
