// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/domain/recurrence"
)

// PlannedTransaction represents a scheduled, possibly recurring cash flow.
// It produces derived Occurrences when expanded over a window; it is not
// itself part of the realized ledger.
type PlannedTransaction struct {
	ID         uuid.UUID
	Amount     decimal.Decimal
	Kind       TransactionKind
	CategoryID uuid.UUID
	StartDate  time.Time
	EndDate    *time.Time
	Rule       recurrence.Rule
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewPlannedTransaction creates a new PlannedTransaction entity.
func NewPlannedTransaction(
	amount decimal.Decimal,
	kind TransactionKind,
	categoryID uuid.UUID,
	startDate time.Time,
	endDate *time.Time,
	rule recurrence.Rule,
) *PlannedTransaction {
	now := time.Now().UTC()

	if endDate != nil {
		d := DateOnly(*endDate)
		endDate = &d
	}

	return &PlannedTransaction{
		ID:         uuid.New(),
		Amount:     amount,
		Kind:       kind,
		CategoryID: categoryID,
		StartDate:  DateOnly(startDate),
		EndDate:    endDate,
		Rule:       rule,
		Active:     true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// OccurrenceStatus represents the lifecycle state of a single occurrence.
type OccurrenceStatus string

const (
	OccurrenceStatusPending  OccurrenceStatus = "pending"
	OccurrenceStatusExecuted OccurrenceStatus = "executed"
	OccurrenceStatusSkipped  OccurrenceStatus = "skipped"
)

// Occurrence is a derived record: one concrete calendar date produced by
// expanding a planned transaction's recurrence rule. Occurrences are computed
// on demand; only executed and skipped ones are materialized as
// OccurrenceRecords.
type Occurrence struct {
	PlannedTransactionID uuid.UUID
	Date                 time.Time
	Amount               decimal.Decimal
	Kind                 TransactionKind
	CategoryID           uuid.UUID
	Status               OccurrenceStatus
	TransactionID        *uuid.UUID
}

// SignedAmount returns the occurrence amount signed by kind.
func (o *Occurrence) SignedAmount() decimal.Decimal {
	if o.Kind == TransactionKindExpense {
		return o.Amount.Neg()
	}
	return o.Amount
}

// OccurrenceRecord materializes the non-default status of one occurrence.
// An occurrence without a record is pending.
type OccurrenceRecord struct {
	ID                   uuid.UUID
	PlannedTransactionID uuid.UUID
	Date                 time.Time
	Status               OccurrenceStatus
	TransactionID        *uuid.UUID
	CreatedAt            time.Time
}

// NewOccurrenceRecord creates a record marking the occurrence of the given
// planned transaction on the given date as executed or skipped.
func NewOccurrenceRecord(
	plannedTransactionID uuid.UUID,
	date time.Time,
	status OccurrenceStatus,
	transactionID *uuid.UUID,
) *OccurrenceRecord {
	return &OccurrenceRecord{
		ID:                   uuid.New(),
		PlannedTransactionID: plannedTransactionID,
		Date:                 DateOnly(date),
		Status:               status,
		TransactionID:        transactionID,
		CreatedAt:            time.Now().UTC(),
	}
}

// SeriesEnd returns the effective last date of the planned series, taking the
// earlier of the entity's EndDate and the rule's until-date, or nil when the
// series is open ended.
func (p *PlannedTransaction) SeriesEnd() *time.Time {
	end := p.EndDate
	if p.Rule.End == recurrence.EndUntilDate {
		if end == nil || p.Rule.UntilDate.Before(*end) {
			u := p.Rule.UntilDate
			end = &u
		}
	}
	return end
}
