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

// loanRepository implements the adapter.LoanRepository interface.
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository instance.
func NewLoanRepository(db *gorm.DB) adapter.LoanRepository {
	return &loanRepository{
		db: db,
	}
}

// Create creates a new loan in the database.
func (r *loanRepository) Create(ctx context.Context, loan *entity.Loan) error {
	loanModel := model.LoanFromEntity(loan)
	result := r.db.WithContext(ctx).Create(loanModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a loan by its ID.
func (r *loanRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	var loanModel model.LoanModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&loanModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLoanNotFound
		}
		return nil, result.Error
	}
	return loanModel.ToEntity(), nil
}

// FindByIDWithLender retrieves a loan with its lender by ID.
func (r *loanRepository) FindByIDWithLender(ctx context.Context, id uuid.UUID) (*entity.LoanWithLender, error) {
	var loanModel model.LoanModel
	result := r.db.WithContext(ctx).
		Preload("Lender").
		Where("id = ?", id).
		First(&loanModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLoanNotFound
		}
		return nil, result.Error
	}
	return loanModel.ToEntityWithLender(), nil
}

// List retrieves all loans, optionally filtered by status.
func (r *loanRepository) List(ctx context.Context, status *entity.LoanStatus) ([]*entity.Loan, error) {
	query := r.db.WithContext(ctx).Model(&model.LoanModel{})
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var loanModels []model.LoanModel
	result := query.Order("issue_date ASC, created_at ASC").Find(&loanModels)
	if result.Error != nil {
		return nil, result.Error
	}

	loans := make([]*entity.Loan, len(loanModels))
	for i, lm := range loanModels {
		loans[i] = lm.ToEntity()
	}
	return loans, nil
}

// Update updates an existing loan.
func (r *loanRepository) Update(ctx context.Context, loan *entity.Loan) error {
	loanModel := model.LoanFromEntity(loan)
	result := r.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("id = ?", loan.ID).
		Updates(map[string]interface{}{
			"lender_id":     loanModel.LenderID,
			"amount":        loanModel.Amount,
			"interest_rate": loanModel.InterestRate,
			"issue_date":    loanModel.IssueDate,
			"end_date":      loanModel.EndDate,
			"status":        loanModel.Status,
			"updated_at":    loanModel.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLoanNotFound
	}
	return nil
}

// Delete deletes a loan, cascading to its loan payments.
func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", id).
			Delete(&model.LoanPaymentModel{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.LoanModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrLoanNotFound
		}
		return nil
	})
}

// CountActiveByLender counts the active loans of a lender.
func (r *loanRepository) CountActiveByLender(ctx context.Context, lenderID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.LoanModel{}).
		Where("lender_id = ? AND status = ?", lenderID, string(entity.LoanStatusActive)).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// LinkDisbursement atomically creates the disbursement transaction and
// records the set-once link on the loan. The conditional update only matches
// while the loan has no disbursement transaction yet, so a second link
// attempt fails without side effects.
func (r *loanRepository) LinkDisbursement(ctx context.Context, loan *entity.Loan, transaction *entity.Transaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}

		result := tx.Model(&model.LoanModel{}).
			Where("id = ? AND disbursement_transaction_id IS NULL", loan.ID).
			Updates(map[string]interface{}{
				"disbursement_transaction_id": transaction.ID,
				"updated_at":                  time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrDisbursementAlreadyLinked
		}
		return nil
	})
}

// SettleFullRepayment atomically records the repayment transaction, cancels
// every open payment of the loan, and marks the loan paid off.
func (r *loanRepository) SettleFullRepayment(ctx context.Context, loan *entity.Loan, transaction *entity.Transaction) (int64, error) {
	var cancelled int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
			return err
		}

		now := time.Now().UTC()

		result := tx.Model(&model.LoanPaymentModel{}).
			Where("loan_id = ? AND status IN ?", loan.ID, []string{
				string(entity.LoanPaymentStatusPending),
				string(entity.LoanPaymentStatusOverdue),
			}).
			Updates(map[string]interface{}{
				"status":     string(entity.LoanPaymentStatusCancelled),
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		cancelled = result.RowsAffected

		result = tx.Model(&model.LoanModel{}).
			Where("id = ? AND status = ?", loan.ID, string(entity.LoanStatusActive)).
			Updates(map[string]interface{}{
				"status":     string(entity.LoanStatusPaidOff),
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrLoanNotActive
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return cancelled, nil
}
