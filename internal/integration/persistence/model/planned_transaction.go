// Package model defines database models for the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/domain/entity"
	"github.com/cashplan/backend/internal/domain/recurrence"
)

// PlannedTransactionModel represents the planned_transactions table. The
// recurrence rule is flattened into columns; a planned transaction owns
// exactly one rule.
type PlannedTransactionModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Kind           string          `gorm:"type:varchar(10);not null"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate      time.Time       `gorm:"type:date;not null"`
	EndDate        *time.Time      `gorm:"type:date"`
	RuleType       string          `gorm:"type:varchar(10);not null"`
	RuleInterval   int             `gorm:"default:0"`
	RuleUnit       string          `gorm:"type:varchar(10)"`
	RuleEnd        string          `gorm:"type:varchar(15);not null"`
	RuleUntilDate  *time.Time      `gorm:"type:date"`
	RuleCount      int             `gorm:"default:0"`
	Active         bool            `gorm:"default:true;index"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the PlannedTransactionModel.
func (PlannedTransactionModel) TableName() string {
	return "planned_transactions"
}

// ToEntity converts a PlannedTransactionModel to a domain PlannedTransaction entity.
func (m *PlannedTransactionModel) ToEntity() *entity.PlannedTransaction {
	rule := recurrence.Rule{
		Type:     recurrence.Type(m.RuleType),
		Interval: m.RuleInterval,
		Unit:     recurrence.Unit(m.RuleUnit),
		End:      recurrence.EndCondition(m.RuleEnd),
		Count:    m.RuleCount,
	}
	if m.RuleUntilDate != nil {
		rule.UntilDate = *m.RuleUntilDate
	}

	return &entity.PlannedTransaction{
		ID:         m.ID,
		Amount:     m.Amount,
		Kind:       entity.TransactionKind(m.Kind),
		CategoryID: m.CategoryID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Rule:       rule,
		Active:     m.Active,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// PlannedTransactionFromEntity creates a PlannedTransactionModel from a
// domain PlannedTransaction entity.
func PlannedTransactionFromEntity(planned *entity.PlannedTransaction) *PlannedTransactionModel {
	m := &PlannedTransactionModel{
		ID:           planned.ID,
		Amount:       planned.Amount,
		Kind:         string(planned.Kind),
		CategoryID:   planned.CategoryID,
		StartDate:    planned.StartDate,
		EndDate:      planned.EndDate,
		RuleType:     string(planned.Rule.Type),
		RuleInterval: planned.Rule.Interval,
		RuleUnit:     string(planned.Rule.Unit),
		RuleEnd:      string(planned.Rule.End),
		RuleCount:    planned.Rule.Count,
		Active:       planned.Active,
		CreatedAt:    planned.CreatedAt,
		UpdatedAt:    planned.UpdatedAt,
	}
	if planned.Rule.End == recurrence.EndUntilDate {
		until := planned.Rule.UntilDate
		m.RuleUntilDate = &until
	}
	return m
}

// OccurrenceRecordModel represents the occurrence_records table: the
// materialized executed/skipped occurrences of planned transactions.
type OccurrenceRecordModel struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PlannedTransactionID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_occurrence_once,priority:1"`
	Date                 time.Time  `gorm:"type:date;not null;uniqueIndex:idx_occurrence_once,priority:2"`
	Status               string     `gorm:"type:varchar(10);not null"`
	TransactionID        *uuid.UUID `gorm:"type:uuid"`
	CreatedAt            time.Time  `gorm:"not null"`

	PlannedTransaction *PlannedTransactionModel `gorm:"foreignKey:PlannedTransactionID;references:ID;constraint:OnDelete:CASCADE"`
	Transaction        *TransactionModel        `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName returns the table name for the OccurrenceRecordModel.
func (OccurrenceRecordModel) TableName() string {
	return "occurrence_records"
}

// ToEntity converts an OccurrenceRecordModel to a domain OccurrenceRecord entity.
func (m *OccurrenceRecordModel) ToEntity() *entity.OccurrenceRecord {
	return &entity.OccurrenceRecord{
		ID:                   m.ID,
		PlannedTransactionID: m.PlannedTransactionID,
		Date:                 m.Date,
		Status:               entity.OccurrenceStatus(m.Status),
		TransactionID:        m.TransactionID,
		CreatedAt:            m.CreatedAt,
	}
}

// OccurrenceRecordFromEntity creates an OccurrenceRecordModel from a domain
// OccurrenceRecord entity.
func OccurrenceRecordFromEntity(record *entity.OccurrenceRecord) *OccurrenceRecordModel {
	return &OccurrenceRecordModel{
		ID:                   record.ID,
		PlannedTransactionID: record.PlannedTransactionID,
		Date:                 record.Date,
		Status:               string(record.Status),
		TransactionID:        record.TransactionID,
		CreatedAt:            record.CreatedAt,
	}
}
