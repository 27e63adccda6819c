// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/integration/persistence/model"
)

// pendingPaymentRepository implements the adapter.PendingPaymentRepository
// interface.
type pendingPaymentRepository struct {
	db *gorm.DB
}

// NewPendingPaymentRepository creates a new pending payment repository
// instance.
func NewPendingPaymentRepository(db *gorm.DB) adapter.PendingPaymentRepository {
	return &pendingPaymentRepository{
		db: db,
	}
}

// Create creates a new pending payment in the database.
func (r *pendingPaymentRepository) Create(ctx context.Context, payment *entity.PendingPayment) error {
	paymentModel := model.PendingPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Create(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a pending payment by its ID.
func (r *pendingPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PendingPayment, error) {
	var paymentModel model.PendingPaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPendingPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByFilter retrieves pending payments matching the filter, ordered by
// planned date ascending with undated payments last.
func (r *pendingPaymentRepository) FindByFilter(ctx context.Context, filter adapter.PendingPaymentFilter) ([]*entity.PendingPayment, error) {
	query := r.db.WithContext(ctx).Model(&model.PendingPaymentModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", string(*filter.Priority))
	}
	if filter.HasPlannedDate != nil {
		if *filter.HasPlannedDate {
			query = query.Where("planned_date IS NOT NULL")
		} else {
			query = query.Where("planned_date IS NULL")
		}
	}

	var paymentModels []model.PendingPaymentModel
	result := query.
		Order("planned_date IS NULL, planned_date ASC, created_at ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.PendingPayment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments, nil
}

// Cancel moves an active payment to cancelled. The conditional update only
// matches while the payment is still active, so a payment executed by a
// concurrent caller keeps its status and transaction link.
func (r *pendingPaymentRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.PendingPayment, error) {
	var cancelled *entity.PendingPayment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PendingPaymentModel{}).
			Where("id = ? AND status = ?", id, string(entity.PendingPaymentStatusActive)).
			Updates(map[string]interface{}{
				"status":     string(entity.PendingPaymentStatusCancelled),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.PendingPaymentModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerror.ErrPendingPaymentNotFound
			}
			return domainerror.ErrPendingPaymentNotActive
		}

		var paymentModel model.PendingPaymentModel
		if err := tx.Where("id = ?", id).First(&paymentModel).Error; err != nil {
			return err
		}
		cancelled = paymentModel.ToEntity()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return cancelled, nil
}

// ExecuteAndLink atomically creates the ledger transaction and moves the
// payment to executed with the transaction linked. The conditional update
// only matches while the payment is still active, so a payment executed or
// cancelled by a concurrent caller fails the whole operation.
func (r *pendingPaymentRepository) ExecuteAndLink(ctx context.Context, payment *entity.PendingPayment, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}

		result := tx.Model(&model.PendingPaymentModel{}).
			Where("id = ? AND status = ?", payment.ID, string(entity.PendingPaymentStatusActive)).
			Updates(map[string]interface{}{
				"status":         string(entity.PendingPaymentStatusExecuted),
				"transaction_id": transaction.ID,
				"updated_at":     time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrPendingPaymentNotActive
		}
		return nil
	})
}

// Delete deletes a pending payment.
func (r *pendingPaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PendingPaymentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPendingPaymentNotFound
	}
	return nil
}
