// Package error defines domain-specific errors for the obligation engine.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameRequired is returned when a category is created or renamed without a name.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrInvalidCategoryKind is returned when the category kind is neither income nor expense.
	ErrInvalidCategoryKind = errors.New("invalid category kind")

	// ErrSystemCategoryImmutable is returned on attempts to edit or delete a system category.
	ErrSystemCategoryImmutable = errors.New("system categories cannot be modified")

	// ErrCategoryInUse is returned when deleting a category that transactions still reference.
	ErrCategoryInUse = errors.New("category is referenced by existing records")
)
