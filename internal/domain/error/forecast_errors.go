// Package error defines domain-specific errors for the obligation engine.
package error

import "errors"

// Forecast domain errors.
var (
	// ErrDataUnavailable is returned when the persistence layer cannot be
	// queried. The forecast never falls back to a silent zero balance.
	ErrDataUnavailable = errors.New("ledger data unavailable")

	// ErrInvalidForecastRange is returned when the cash-gap range end precedes its start.
	ErrInvalidForecastRange = errors.New("range end must not precede range start")
)

// DataUnavailableError wraps the underlying persistence failure behind
// ErrDataUnavailable so callers can match the kind and still inspect the cause.
type DataUnavailableError struct {
	Err error
}

// Error implements the error interface.
func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return ErrDataUnavailable.Error() + ": " + e.Err.Error()
	}
	return ErrDataUnavailable.Error()
}

// Unwrap returns the sentinel for errors.Is matching.
func (e *DataUnavailableError) Unwrap() error {
	return ErrDataUnavailable
}

// NewDataUnavailableError wraps a persistence failure.
func NewDataUnavailableError(err error) *DataUnavailableError {
	return &DataUnavailableError{Err: err}
}
