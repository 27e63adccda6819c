// Package dto defines data transfer objects for API requests and responses.
package dto

import "time"

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ParseDate parses a wire date into a UTC calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateFormat, value)
}

// FormatDate renders a calendar date in the wire format.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateFormat)
}

// FormatDatePtr renders an optional calendar date, or nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatDate(*t)
	return &s
}
