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

// loanPaymentRepository implements the adapter.LoanPaymentRepository interface.
type loanPaymentRepository struct {
	db *gorm.DB
}

// NewLoanPaymentRepository creates a new loan payment repository instance.
func NewLoanPaymentRepository(db *gorm.DB) adapter.LoanPaymentRepository {
	return &loanPaymentRepository{
		db: db,
	}
}

// Create creates a new loan payment in the database.
func (r *loanPaymentRepository) Create(ctx context.Context, payment *entity.LoanPayment) error {
	paymentModel := model.LoanPaymentFromEntity(payment)
	result := r.db.WithContext(ctx).Create(paymentModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a loan payment by its ID.
func (r *loanPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LoanPayment, error) {
	var paymentModel model.LoanPaymentModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLoanPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByLoan retrieves all payments of a loan ordered by scheduled date.
func (r *loanPaymentRepository) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*entity.LoanPayment, error) {
	var paymentModels []model.LoanPaymentModel
	result := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Order("scheduled_date ASC, created_at ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.LoanPayment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments, nil
}

// FindByFilter retrieves loan payments matching the filter, ordered by
// scheduled date ascending.
func (r *loanPaymentRepository) FindByFilter(ctx context.Context, filter adapter.LoanPaymentFilter) ([]*entity.LoanPayment, error) {
	query := r.db.WithContext(ctx).Model(&model.LoanPaymentModel{})

	if filter.LoanID != nil {
		query = query.Where("loan_id = ?", *filter.LoanID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where("status IN ?", statuses)
	}
	if filter.StartDate != nil {
		query = query.Where("scheduled_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("scheduled_date <= ?", *filter.EndDate)
	}

	var paymentModels []model.LoanPaymentModel
	result := query.Order("scheduled_date ASC, created_at ASC").Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}

	payments := make([]*entity.LoanPayment, len(paymentModels))
	for i, pm := range paymentModels {
		payments[i] = pm.ToEntity()
	}
	return payments, nil
}

// MarkOverdue promotes every pending payment scheduled strictly before asOf
// to overdue in one conditional update. Re-running with the same asOf matches
// zero rows, so the sweep is idempotent.
func (r *loanPaymentRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.LoanPaymentModel{}).
		Where("status = ? AND scheduled_date < ?", string(entity.LoanPaymentStatusPending), asOf).
		Updates(map[string]interface{}{
			"status":     string(entity.LoanPaymentStatusOverdue),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ExecuteAndLink atomically creates the ledger transaction and applies the
// executed state carried by payment. The conditional update only matches
// while the stored payment is still pending or overdue; a payment already
// settled by a concurrent caller fails the whole operation with a state
// error.
func (r *loanPaymentRepository) ExecuteAndLink(ctx context.Context, payment *entity.LoanPayment, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}

		paymentModel := model.LoanPaymentFromEntity(payment)
		result := tx.Model(&model.LoanPaymentModel{}).
			Where("id = ? AND status IN ?", payment.ID, []string{
				string(entity.LoanPaymentStatusPending),
				string(entity.LoanPaymentStatusOverdue),
			}).
			Updates(map[string]interface{}{
				"status":          paymentModel.Status,
				"executed_date":   paymentModel.ExecutedDate,
				"executed_amount": paymentModel.ExecutedAmount,
				"transaction_id":  transaction.ID,
				"overdue_days":    paymentModel.OverdueDays,
				"updated_at":      time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.stateError(tx, payment.ID, string(paymentModel.Status))
		}
		return nil
	})
}

// Cancel atomically moves the payment to cancelled and returns its updated
// state. Fails when the stored payment is no longer pending or overdue.
func (r *loanPaymentRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.LoanPayment, error) {
	var cancelled *entity.LoanPayment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.LoanPaymentModel{}).
			Where("id = ? AND status IN ?", id, []string{
				string(entity.LoanPaymentStatusPending),
				string(entity.LoanPaymentStatusOverdue),
			}).
			Updates(map[string]interface{}{
				"status":     string(entity.LoanPaymentStatusCancelled),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return r.stateError(tx, id, string(entity.LoanPaymentStatusCancelled))
		}

		var paymentModel model.LoanPaymentModel
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

// stateError reads the stored status of the payment to build a precise state
// error, falling back to not-found when the row does not exist.
func (r *loanPaymentRepository) stateError(tx *gorm.DB, id uuid.UUID, attempted string) error {
	var paymentModel model.LoanPaymentModel
	if err := tx.Where("id = ?", id).First(&paymentModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrLoanPaymentNotFound
		}
		return err
	}
	return domainerror.NewPaymentStateError(paymentModel.Status, attempted)
}
