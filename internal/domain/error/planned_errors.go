// Package error defines domain-specific errors for the obligation engine.
package error

import "errors"

// Planned transaction and occurrence domain errors.
var (
	// ErrPlannedTransactionNotFound is returned when a planned transaction is not found.
	ErrPlannedTransactionNotFound = errors.New("planned transaction not found")

	// ErrInvalidPlannedAmount is returned when the amount is not strictly positive.
	ErrInvalidPlannedAmount = errors.New("planned amount must be positive")

	// ErrInvalidPlannedDates is returned when the end date precedes the start date.
	ErrInvalidPlannedDates = errors.New("end date must not precede start date")

	// ErrOccurrenceNotInSeries is returned when the given date is not an occurrence
	// of the planned transaction's recurrence series.
	ErrOccurrenceNotInSeries = errors.New("date is not an occurrence of this planned transaction")

	// ErrOccurrenceAlreadySettled is returned when executing or skipping an
	// occurrence that is already executed or skipped.
	ErrOccurrenceAlreadySettled = errors.New("occurrence is already executed or skipped")

	// ErrOccurrenceNotSkipped is returned when unskipping an occurrence that is not skipped.
	ErrOccurrenceNotSkipped = errors.New("occurrence is not skipped")

	// ErrOccurrenceRecordNotFound is returned when no executed or skipped
	// record exists for an occurrence date; such an occurrence is pending.
	ErrOccurrenceRecordNotFound = errors.New("occurrence record not found")

	// ErrPlannedTransactionInactive is returned when operating on a deactivated planned transaction.
	ErrPlannedTransactionInactive = errors.New("planned transaction is inactive")
)
