package recurrence

import "errors"

// Rule and expansion validation errors.
var (
	// ErrInvalidType is returned when the rule's frequency type is unknown.
	ErrInvalidType = errors.New("invalid recurrence type")

	// ErrInvalidInterval is returned when a custom rule has an interval below 1.
	ErrInvalidInterval = errors.New("custom interval must be at least 1")

	// ErrInvalidUnit is returned when a custom rule has an unknown step unit.
	ErrInvalidUnit = errors.New("invalid custom interval unit")

	// ErrInvalidEndCondition is returned when the rule's end condition is unknown.
	ErrInvalidEndCondition = errors.New("invalid end condition")

	// ErrMissingUntilDate is returned when an until-date end condition has no date.
	ErrMissingUntilDate = errors.New("until-date end condition requires a date")

	// ErrInvalidCount is returned when an after-count end condition has a count below 1.
	ErrInvalidCount = errors.New("occurrence count must be at least 1")

	// ErrInvalidWindow is returned when the expansion window end precedes its start.
	ErrInvalidWindow = errors.New("window end must not precede window start")
)
