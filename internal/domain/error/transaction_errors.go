// Package error defines domain-specific errors for the obligation engine.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionAmount is returned when the amount is not strictly positive.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")

	// ErrInvalidTransactionKind is returned when the kind is neither income nor expense.
	ErrInvalidTransactionKind = errors.New("invalid transaction kind")

	// ErrTransactionKindMismatch is returned when the kind contradicts the category's kind.
	ErrTransactionKindMismatch = errors.New("transaction kind does not match category kind")
)
