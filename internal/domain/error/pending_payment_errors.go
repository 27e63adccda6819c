// Package error defines domain-specific errors for the obligation engine.
package error

import "errors"

// Pending payment domain errors.
var (
	// ErrPendingPaymentNotFound is returned when a pending payment is not found.
	ErrPendingPaymentNotFound = errors.New("pending payment not found")

	// ErrInvalidPendingPaymentAmount is returned when the amount is not strictly positive.
	ErrInvalidPendingPaymentAmount = errors.New("pending payment amount must be positive")

	// ErrInvalidPendingPaymentPriority is returned when the priority is unknown.
	ErrInvalidPendingPaymentPriority = errors.New("invalid pending payment priority")

	// ErrPendingPaymentNotActive is returned when executing or cancelling a
	// payment that is already executed or cancelled.
	ErrPendingPaymentNotActive = errors.New("pending payment is not active")
)
