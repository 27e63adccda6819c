package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.PlannedTransactionModel{},
		&model.OccurrenceRecordModel{},
		&model.PendingPaymentModel{},
		&model.LenderModel{},
		&model.LoanModel{},
		&model.LoanPaymentModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedLoan(t *testing.T, db *gorm.DB) *entity.Loan {
	t.Helper()
	ctx := context.Background()

	lender := entity.NewLender("Test Bank", "")
	if err := NewLenderRepository(db).Create(ctx, lender); err != nil {
		t.Fatalf("failed to seed lender: %v", err)
	}

	loan := entity.NewLoan(
		lender.ID,
		decimal.NewFromInt(100000),
		nil,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		nil,
	)
	if err := NewLoanRepository(db).Create(ctx, loan); err != nil {
		t.Fatalf("failed to seed loan: %v", err)
	}
	return loan
}

func seedPayment(t *testing.T, db *gorm.DB, loanID uuid.UUID, scheduled time.Time) *entity.LoanPayment {
	t.Helper()

	payment := entity.NewLoanPayment(loanID, scheduled, decimal.NewFromInt(8000), decimal.NewFromInt(1000))
	if err := NewLoanPaymentRepository(db).Create(context.Background(), payment); err != nil {
		t.Fatalf("failed to seed payment: %v", err)
	}
	return payment
}

func seedCategory(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	category := entity.NewCategory("Loan payments", entity.CategoryKindExpense, true)
	if err := NewCategoryRepository(db).Create(context.Background(), category); err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category.ID
}

func TestLoanPaymentRepositoryMarkOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	asOf := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	past := seedPayment(t, db, loan.ID, asOf.AddDate(0, 0, -10))
	due := seedPayment(t, db, loan.ID, asOf)
	future := seedPayment(t, db, loan.ID, asOf.AddDate(0, 0, 10))

	count, err := repo.MarkOverdue(ctx, asOf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 transition, got %d", count)
	}

	stored, err := repo.FindByID(ctx, past.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != entity.LoanPaymentStatusOverdue {
		t.Errorf("expected overdue, got %s", stored.Status)
	}

	for _, p := range []*entity.LoanPayment{due, future} {
		stored, err := repo.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entity.LoanPaymentStatusPending {
			t.Errorf("expected pending, got %s", stored.Status)
		}
	}

	t.Run("second sweep transitions nothing", func(t *testing.T) {
		count, err := repo.MarkOverdue(ctx, asOf)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if count != 0 {
			t.Errorf("expected 0 transitions, got %d", count)
		}
	})
}

func TestLoanPaymentRepositoryExecuteAndLink(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	scheduled := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	categoryID := seedCategory(t, db)

	t.Run("pending payment", func(t *testing.T) {
		payment := seedPayment(t, db, loan.ID, scheduled)

		executedDate := scheduled
		executedAmount := decimal.NewFromInt(9000)
		transaction := entity.NewTransaction(executedDate, executedAmount, entity.TransactionKindExpense, categoryID, "Loan payment")

		payment.Status = entity.LoanPaymentStatusExecuted
		payment.ExecutedDate = &executedDate
		payment.ExecutedAmount = &executedAmount
		payment.TransactionID = &transaction.ID

		if err := repo.ExecuteAndLink(ctx, payment, transaction); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.FindByID(ctx, payment.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entity.LoanPaymentStatusExecuted {
			t.Errorf("expected executed, got %s", stored.Status)
		}
		if stored.TransactionID == nil || *stored.TransactionID != transaction.ID {
			t.Error("expected the payment to link the created transaction")
		}

		if _, err := NewTransactionRepository(db).FindByID(ctx, transaction.ID); err != nil {
			t.Errorf("expected the ledger transaction to exist: %v", err)
		}
	})

	t.Run("already settled payment rolls back the transaction", func(t *testing.T) {
		payment := seedPayment(t, db, loan.ID, scheduled)
		cancelled, err := repo.Cancel(ctx, payment.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cancelled.Status != entity.LoanPaymentStatusCancelled {
			t.Fatalf("expected cancelled, got %s", cancelled.Status)
		}

		executedDate := scheduled
		executedAmount := decimal.NewFromInt(9000)
		transaction := entity.NewTransaction(executedDate, executedAmount, entity.TransactionKindExpense, categoryID, "Loan payment")

		payment.Status = entity.LoanPaymentStatusExecuted
		payment.ExecutedDate = &executedDate
		payment.ExecutedAmount = &executedAmount
		payment.TransactionID = &transaction.ID

		err = repo.ExecuteAndLink(ctx, payment, transaction)

		var stateErr *domainerror.PaymentStateError
		if !errors.As(err, &stateErr) {
			t.Fatalf("expected PaymentStateError, got %v", err)
		}
		if stateErr.Current != string(entity.LoanPaymentStatusCancelled) {
			t.Errorf("expected current state cancelled, got %s", stateErr.Current)
		}

		if _, err := NewTransactionRepository(db).FindByID(ctx, transaction.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected the ledger transaction rolled back, got %v", err)
		}
	})
}

func TestLoanPaymentRepositoryCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	scheduled := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)

	t.Run("cancel twice", func(t *testing.T) {
		payment := seedPayment(t, db, loan.ID, scheduled)

		if _, err := repo.Cancel(ctx, payment.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := repo.Cancel(ctx, payment.ID)
		if !errors.Is(err, domainerror.ErrPaymentNotTransitionable) {
			t.Errorf("expected ErrPaymentNotTransitionable, got %v", err)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		_, err := repo.Cancel(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrLoanPaymentNotFound) {
			t.Errorf("expected ErrLoanPaymentNotFound, got %v", err)
		}
	})
}

func TestLoanPaymentRepositoryFindByFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	other := seedLoan(t, db)

	seedPayment(t, db, loan.ID, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	seedPayment(t, db, loan.ID, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	seedPayment(t, db, other.ID, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))

	t.Run("by loan", func(t *testing.T) {
		payments, err := repo.FindByLoan(ctx, loan.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(payments) != 2 {
			t.Fatalf("expected 2 payments, got %d", len(payments))
		}
		if payments[0].ScheduledDate.After(payments[1].ScheduledDate) {
			t.Error("expected payments ordered by scheduled date")
		}
	})

	t.Run("by date range", func(t *testing.T) {
		start := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC)
		payments, err := repo.FindByFilter(ctx, adapter.LoanPaymentFilter{
			StartDate: &start,
			EndDate:   &end,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(payments) != 2 {
			t.Errorf("expected 2 payments in range, got %d", len(payments))
		}
	})
}
