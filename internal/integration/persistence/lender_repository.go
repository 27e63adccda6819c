// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/integration/persistence/model"
)

// lenderRepository implements the adapter.LenderRepository interface.
type lenderRepository struct {
	db *gorm.DB
}

// NewLenderRepository creates a new lender repository instance.
func NewLenderRepository(db *gorm.DB) adapter.LenderRepository {
	return &lenderRepository{
		db: db,
	}
}

// Create creates a new lender in the database.
func (r *lenderRepository) Create(ctx context.Context, lender *entity.Lender) error {
	lenderModel := model.LenderFromEntity(lender)
	result := r.db.WithContext(ctx).Create(lenderModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a lender by its ID.
func (r *lenderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lender, error) {
	var lenderModel model.LenderModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&lenderModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLenderNotFound
		}
		return nil, result.Error
	}
	return lenderModel.ToEntity(), nil
}

// List retrieves all lenders ordered by name.
func (r *lenderRepository) List(ctx context.Context) ([]*entity.Lender, error) {
	var lenderModels []model.LenderModel
	result := r.db.WithContext(ctx).Order("name ASC").Find(&lenderModels)
	if result.Error != nil {
		return nil, result.Error
	}

	lenders := make([]*entity.Lender, len(lenderModels))
	for i, lm := range lenderModels {
		lenders[i] = lm.ToEntity()
	}
	return lenders, nil
}

// Update updates an existing lender.
func (r *lenderRepository) Update(ctx context.Context, lender *entity.Lender) error {
	lenderModel := model.LenderFromEntity(lender)
	result := r.db.WithContext(ctx).
		Model(&model.LenderModel{}).
		Where("id = ?", lender.ID).
		Updates(map[string]interface{}{
			"name":         lenderModel.Name,
			"contact_info": lenderModel.ContactInfo,
			"updated_at":   lenderModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLenderNotFound
	}
	return nil
}

// Delete deletes a lender.
func (r *lenderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.LenderModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLenderNotFound
	}
	return nil
}
