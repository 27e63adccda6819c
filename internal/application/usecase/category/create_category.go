// Package category contains category use cases.
package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name string
	Kind entity.CategoryKind
}

// CreateCategoryUseCase handles category creation.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.ErrCategoryNameRequired
	}
	if input.Kind != entity.CategoryKindExpense && input.Kind != entity.CategoryKindIncome {
		return nil, domainerror.ErrInvalidCategoryKind
	}

	category := entity.NewCategory(name, input.Kind, false)

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// ListCategoriesUseCase lists categories, optionally filtered by kind.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute performs the listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, kind *entity.CategoryKind) ([]*entity.Category, error) {
	categories, err := uc.categoryRepo.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategoryUseCase renames a category. System categories are immutable.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the rename.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, id uuid.UUID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.ErrCategoryNameRequired
	}

	category, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.IsSystem {
		return nil, domainerror.ErrSystemCategoryImmutable
	}

	category.Name = name
	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategoryUseCase deletes a category. System categories and categories
// still referenced by other records cannot be deleted.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{categoryRepo: categoryRepo}
}

// Execute performs the deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	category, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if category.IsSystem {
		return domainerror.ErrSystemCategoryImmutable
	}

	refs, err := uc.categoryRepo.CountReferences(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count category references: %w", err)
	}
	if refs > 0 {
		return domainerror.ErrCategoryInUse
	}

	if err := uc.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
