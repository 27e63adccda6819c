// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/domain/entity"
)

// LenderRepository defines the interface for lender persistence operations.
type LenderRepository interface {
	// Create creates a new lender.
	Create(ctx context.Context, lender *entity.Lender) error

	// FindByID retrieves a lender by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lender, error)

	// List retrieves all lenders ordered by name.
	List(ctx context.Context) ([]*entity.Lender, error)

	// Update updates an existing lender.
	Update(ctx context.Context, lender *entity.Lender) error

	// Delete deletes a lender. The use case guards against deleting lenders
	// with active loans before calling this.
	Delete(ctx context.Context, id uuid.UUID) error
}
