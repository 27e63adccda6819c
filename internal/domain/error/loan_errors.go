// Package error defines domain-specific errors for the obligation engine.
package error

import (
	"errors"
	"fmt"
)

// Lender and loan domain errors.
var (
	// ErrLenderNotFound is returned when a lender is not found.
	ErrLenderNotFound = errors.New("lender not found")

	// ErrLenderNameRequired is returned when a lender is created without a name.
	ErrLenderNameRequired = errors.New("lender name is required")

	// ErrLenderHasActiveLoans is returned when deleting a lender that still has active loans.
	ErrLenderHasActiveLoans = errors.New("lender has active loans")

	// ErrLoanNotFound is returned when a loan is not found.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrInvalidLoanAmount is returned when the loan amount is not strictly positive.
	ErrInvalidLoanAmount = errors.New("loan amount must be positive")

	// ErrInvalidInterestRate is returned when the interest rate is outside [0, 100].
	ErrInvalidInterestRate = errors.New("interest rate must be between 0 and 100")

	// ErrInvalidLoanDates is returned when the end date precedes the issue date.
	ErrInvalidLoanDates = errors.New("end date must not precede issue date")

	// ErrLoanNotActive is returned when scheduling or executing against a paid-off loan.
	ErrLoanNotActive = errors.New("loan is not active")

	// ErrDisbursementAlreadyLinked is returned when linking a disbursement
	// transaction to a loan that already has one. The link is set at most once.
	ErrDisbursementAlreadyLinked = errors.New("loan already has a disbursement transaction")
)

// Loan payment domain errors.
var (
	// ErrLoanPaymentNotFound is returned when a loan payment is not found.
	ErrLoanPaymentNotFound = errors.New("loan payment not found")

	// ErrInvalidPaymentAmounts is returned when principal or interest is
	// negative, or a supplied total differs from principal + interest.
	ErrInvalidPaymentAmounts = errors.New("invalid payment amounts")

	// ErrInvalidExecutedAmount is returned when the executed amount is not strictly positive.
	ErrInvalidExecutedAmount = errors.New("executed amount must be positive")

	// ErrMissingScheduledDate is returned when a payment is scheduled without a date.
	ErrMissingScheduledDate = errors.New("scheduled date is required")

	// ErrPaymentNotTransitionable is the sentinel wrapped by PaymentStateError.
	ErrPaymentNotTransitionable = errors.New("loan payment is in a terminal state")

	// ErrInvalidRepaymentAmount is returned when an early repayment amount is not strictly positive.
	ErrInvalidRepaymentAmount = errors.New("repayment amount must be positive")
)

// PaymentStateError reports an illegal loan payment state transition,
// carrying the payment's current status and the status the caller attempted
// to move it to.
type PaymentStateError struct {
	Current   string
	Attempted string
}

// Error implements the error interface.
func (e *PaymentStateError) Error() string {
	return fmt.Sprintf("cannot transition loan payment from %q to %q", e.Current, e.Attempted)
}

// Unwrap returns the sentinel so callers can match with errors.Is.
func (e *PaymentStateError) Unwrap() error {
	return ErrPaymentNotTransitionable
}

// NewPaymentStateError creates a PaymentStateError for the given transition.
func NewPaymentStateError(current, attempted string) *PaymentStateError {
	return &PaymentStateError{Current: current, Attempted: attempted}
}
