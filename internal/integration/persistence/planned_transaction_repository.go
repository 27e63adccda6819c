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

// plannedTransactionRepository implements the
// adapter.PlannedTransactionRepository interface.
type plannedTransactionRepository struct {
	db *gorm.DB
}

// NewPlannedTransactionRepository creates a new planned transaction
// repository instance.
func NewPlannedTransactionRepository(db *gorm.DB) adapter.PlannedTransactionRepository {
	return &plannedTransactionRepository{
		db: db,
	}
}

// Create creates a new planned transaction in the database.
func (r *plannedTransactionRepository) Create(ctx context.Context, planned *entity.PlannedTransaction) error {
	plannedModel := model.PlannedTransactionFromEntity(planned)
	result := r.db.WithContext(ctx).Create(plannedModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a planned transaction by its ID.
func (r *plannedTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PlannedTransaction, error) {
	var plannedModel model.PlannedTransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&plannedModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPlannedTransactionNotFound
		}
		return nil, result.Error
	}
	return plannedModel.ToEntity(), nil
}

// List retrieves planned transactions, optionally restricted to active ones.
func (r *plannedTransactionRepository) List(ctx context.Context, activeOnly bool) ([]*entity.PlannedTransaction, error) {
	query := r.db.WithContext(ctx).Model(&model.PlannedTransactionModel{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var plannedModels []model.PlannedTransactionModel
	result := query.Order("start_date ASC, created_at ASC").Find(&plannedModels)
	if result.Error != nil {
		return nil, result.Error
	}

	planned := make([]*entity.PlannedTransaction, len(plannedModels))
	for i, pm := range plannedModels {
		planned[i] = pm.ToEntity()
	}
	return planned, nil
}

// Update updates an existing planned transaction.
func (r *plannedTransactionRepository) Update(ctx context.Context, planned *entity.PlannedTransaction) error {
	plannedModel := model.PlannedTransactionFromEntity(planned)
	result := r.db.WithContext(ctx).
		Model(&model.PlannedTransactionModel{}).
		Where("id = ?", planned.ID).
		Updates(map[string]interface{}{
			"amount":          plannedModel.Amount,
			"kind":            plannedModel.Kind,
			"category_id":     plannedModel.CategoryID,
			"start_date":      plannedModel.StartDate,
			"end_date":        plannedModel.EndDate,
			"rule_type":       plannedModel.RuleType,
			"rule_interval":   plannedModel.RuleInterval,
			"rule_unit":       plannedModel.RuleUnit,
			"rule_end":        plannedModel.RuleEnd,
			"rule_until_date": plannedModel.RuleUntilDate,
			"rule_count":      plannedModel.RuleCount,
			"active":          plannedModel.Active,
			"updated_at":      plannedModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPlannedTransactionNotFound
	}
	return nil
}

// Delete deletes a planned transaction and its occurrence records.
func (r *plannedTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("planned_transaction_id = ?", id).
			Delete(&model.OccurrenceRecordModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.PlannedTransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrPlannedTransactionNotFound
		}
		return nil
	})
}

// FindRecords retrieves the occurrence records of the given planned
// transactions with dates inside [start, end].
func (r *plannedTransactionRepository) FindRecords(ctx context.Context, plannedIDs []uuid.UUID, start, end time.Time) ([]*entity.OccurrenceRecord, error) {
	if len(plannedIDs) == 0 {
		return nil, nil
	}

	var recordModels []model.OccurrenceRecordModel
	result := r.db.WithContext(ctx).
		Where("planned_transaction_id IN ?", plannedIDs).
		Where("date >= ? AND date <= ?", start, end).
		Order("date ASC").
		Find(&recordModels)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]*entity.OccurrenceRecord, len(recordModels))
	for i, rm := range recordModels {
		records[i] = rm.ToEntity()
	}
	return records, nil
}

// FindRecord retrieves the occurrence record for one date.
func (r *plannedTransactionRepository) FindRecord(ctx context.Context, plannedID uuid.UUID, date time.Time) (*entity.OccurrenceRecord, error) {
	var recordModel model.OccurrenceRecordModel
	result := r.db.WithContext(ctx).
		Where("planned_transaction_id = ? AND date = ?", plannedID, date).
		First(&recordModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrOccurrenceRecordNotFound
		}
		return nil, result.Error
	}
	return recordModel.ToEntity(), nil
}

// CreateRecord creates an occurrence record.
func (r *plannedTransactionRepository) CreateRecord(ctx context.Context, record *entity.OccurrenceRecord) error {
	recordModel := model.OccurrenceRecordFromEntity(record)
	result := r.db.WithContext(ctx).Create(recordModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateRecordWithTransaction atomically creates the ledger transaction and
// the executed occurrence record linking to it. The existence check runs
// inside the write transaction so two racing executions of the same
// occurrence cannot both succeed; the unique index on (planned, date) backs
// the check up at the database level.
func (r *plannedTransactionRepository) CreateRecordWithTransaction(ctx context.Context, record *entity.OccurrenceRecord, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.OccurrenceRecordModel{}).
			Where("planned_transaction_id = ? AND date = ?", record.PlannedTransactionID, record.Date).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerror.ErrOccurrenceAlreadySettled
		}

		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}
		if err := tx.Create(model.OccurrenceRecordFromEntity(record)).Error; err != nil {
			return err
		}
		return nil
	})
}

// DeleteRecord removes the occurrence record for one date.
func (r *plannedTransactionRepository) DeleteRecord(ctx context.Context, plannedID uuid.UUID, date time.Time) error {
	result := r.db.WithContext(ctx).
		Where("planned_transaction_id = ? AND date = ?", plannedID, date).
		Delete(&model.OccurrenceRecordModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrOccurrenceRecordNotFound
	}
	return nil
}
