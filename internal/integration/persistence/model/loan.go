// Package model defines database models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/domain/entity"
)

// LenderModel represents the lenders table.
type LenderModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	ContactInfo string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the LenderModel.
func (LenderModel) TableName() string {
	return "lenders"
}

// ToEntity converts a LenderModel to a domain Lender entity.
func (m *LenderModel) ToEntity() *entity.Lender {
	return &entity.Lender{
		ID:          m.ID,
		Name:        m.Name,
		ContactInfo: m.ContactInfo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// LenderFromEntity creates a LenderModel from a domain Lender entity.
func LenderFromEntity(lender *entity.Lender) *LenderModel {
	return &LenderModel{
		ID:          lender.ID,
		Name:        lender.Name,
		ContactInfo: lender.ContactInfo,
		CreatedAt:   lender.CreatedAt,
		UpdatedAt:   lender.UpdatedAt,
	}
}

// LoanModel represents the loans table.
type LoanModel struct {
	ID                        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LenderID                  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount                    decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	InterestRate              *decimal.Decimal `gorm:"type:decimal(5,2)"`
	IssueDate                 time.Time        `gorm:"type:date;not null"`
	EndDate                   *time.Time       `gorm:"type:date"`
	Status                    string           `gorm:"type:varchar(10);not null;index"`
	DisbursementTransactionID *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt                 time.Time        `gorm:"not null"`
	UpdatedAt                 time.Time        `gorm:"not null"`

	Lender *LenderModel `gorm:"foreignKey:LenderID;references:ID"`
}

// TableName returns the table name for the LoanModel.
func (LoanModel) TableName() string {
	return "loans"
}

// ToEntity converts a LoanModel to a domain Loan entity.
func (m *LoanModel) ToEntity() *entity.Loan {
	return &entity.Loan{
		ID:                        m.ID,
		LenderID:                  m.LenderID,
		Amount:                    m.Amount,
		InterestRate:              m.InterestRate,
		IssueDate:                 m.IssueDate,
		EndDate:                   m.EndDate,
		Status:                    entity.LoanStatus(m.Status),
		DisbursementTransactionID: m.DisbursementTransactionID,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
	}
}

// ToEntityWithLender converts a LoanModel with its Lender preloaded.
func (m *LoanModel) ToEntityWithLender() *entity.LoanWithLender {
	result := &entity.LoanWithLender{Loan: m.ToEntity()}
	if m.Lender != nil {
		result.Lender = m.Lender.ToEntity()
	}
	return result
}

// LoanFromEntity creates a LoanModel from a domain Loan entity.
func LoanFromEntity(loan *entity.Loan) *LoanModel {
	return &LoanModel{
		ID:                        loan.ID,
		LenderID:                  loan.LenderID,
		Amount:                    loan.Amount,
		InterestRate:              loan.InterestRate,
		IssueDate:                 loan.IssueDate,
		EndDate:                   loan.EndDate,
		Status:                    string(loan.Status),
		DisbursementTransactionID: loan.DisbursementTransactionID,
		CreatedAt:                 loan.CreatedAt,
		UpdatedAt:                 loan.UpdatedAt,
	}
}

// LoanPaymentModel represents the loan_payments table.
type LoanPaymentModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LoanID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	ScheduledDate   time.Time        `gorm:"type:date;not null;index"`
	PrincipalAmount decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	InterestAmount  decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Status          string           `gorm:"type:varchar(15);not null;index"`
	ExecutedDate    *time.Time       `gorm:"type:date"`
	ExecutedAmount  *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TransactionID   *uuid.UUID       `gorm:"type:uuid"`
	OverdueDays     int              `gorm:"default:0"`
	CreatedAt       time.Time        `gorm:"not null"`
	UpdatedAt       time.Time        `gorm:"not null"`

	Loan        *LoanModel        `gorm:"foreignKey:LoanID;references:ID;constraint:OnDelete:CASCADE"`
	Transaction *TransactionModel `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the LoanPaymentModel.
func (LoanPaymentModel) TableName() string {
	return "loan_payments"
}

// ToEntity converts a LoanPaymentModel to a domain LoanPayment entity.
func (m *LoanPaymentModel) ToEntity() *entity.LoanPayment {
	return &entity.LoanPayment{
		ID:              m.ID,
		LoanID:          m.LoanID,
		ScheduledDate:   m.ScheduledDate,
		PrincipalAmount: m.PrincipalAmount,
		InterestAmount:  m.InterestAmount,
		TotalAmount:     m.TotalAmount,
		Status:          entity.LoanPaymentStatus(m.Status),
		ExecutedDate:    m.ExecutedDate,
		ExecutedAmount:  m.ExecutedAmount,
		TransactionID:   m.TransactionID,
		OverdueDays:     m.OverdueDays,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// LoanPaymentFromEntity creates a LoanPaymentModel from a domain LoanPayment entity.
func LoanPaymentFromEntity(payment *entity.LoanPayment) *LoanPaymentModel {
	return &LoanPaymentModel{
		ID:              payment.ID,
		LoanID:          payment.LoanID,
		ScheduledDate:   payment.ScheduledDate,
		PrincipalAmount: payment.PrincipalAmount,
		InterestAmount:  payment.InterestAmount,
		TotalAmount:     payment.TotalAmount,
		Status:          string(payment.Status),
		ExecutedDate:    payment.ExecutedDate,
		ExecutedAmount:  payment.ExecutedAmount,
		TransactionID:   payment.TransactionID,
		OverdueDays:     payment.OverdueDays,
		CreatedAt:       payment.CreatedAt,
		UpdatedAt:       payment.UpdatedAt,
	}
}
