// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindSystemByName retrieves a system category by its name.
	FindSystemByName(ctx context.Context, name string) (*entity.Category, error)

	// List retrieves all categories, optionally filtered by kind.
	List(ctx context.Context, kind *entity.CategoryKind) ([]*entity.Category, error)

	// Update updates an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete deletes a category.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountReferences counts the records (transactions, planned transactions,
	// pending payments) that reference the category.
	CountReferences(ctx context.Context, id uuid.UUID) (int64, error)
}
