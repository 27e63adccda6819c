package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/domain/recurrence"
)

func seedPlanned(t *testing.T, db *gorm.DB) *entity.PlannedTransaction {
	t.Helper()

	planned := entity.NewPlannedTransaction(
		decimal.NewFromInt(700),
		entity.TransactionKindExpense,
		seedCategory(t, db),
		time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC),
		nil,
		recurrence.Every(recurrence.TypeMonthly),
	)
	if err := NewPlannedTransactionRepository(db).Create(context.Background(), planned); err != nil {
		t.Fatalf("failed to seed planned transaction: %v", err)
	}
	return planned
}

func TestPlannedTransactionRepositoryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlannedTransactionRepository(db)
	ctx := context.Background()

	planned := seedPlanned(t, db)

	stored, err := repo.FindByID(ctx, planned.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Rule.Type != recurrence.TypeMonthly {
		t.Errorf("expected monthly rule, got %s", stored.Rule.Type)
	}
	if !stored.Amount.Equal(planned.Amount) {
		t.Errorf("expected amount %s, got %s", planned.Amount, stored.Amount)
	}
	if !stored.Active {
		t.Error("expected planned transaction active")
	}

	t.Run("list active only", func(t *testing.T) {
		stored.Active = false
		if err := repo.Update(ctx, stored); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		actives, err := repo.List(ctx, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(actives) != 0 {
			t.Errorf("expected no active planned transactions, got %d", len(actives))
		}

		all, err := repo.List(ctx, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected 1 planned transaction, got %d", len(all))
		}
	})
}

func TestPlannedTransactionRepositoryRecords(t *testing.T) {
	db := newTestDB(t)
	repo := NewPlannedTransactionRepository(db)
	ctx := context.Background()

	planned := seedPlanned(t, db)
	date := planned.StartDate

	t.Run("execute once", func(t *testing.T) {
		transaction := entity.NewTransaction(date, planned.Amount, planned.Kind, planned.CategoryID, "Planned transaction")
		record := entity.NewOccurrenceRecord(planned.ID, date, entity.OccurrenceStatusExecuted, &transaction.ID)

		if err := repo.CreateRecordWithTransaction(ctx, record, transaction); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.FindRecord(ctx, planned.ID, date)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entity.OccurrenceStatusExecuted {
			t.Errorf("expected executed, got %s", stored.Status)
		}
		if stored.TransactionID == nil || *stored.TransactionID != transaction.ID {
			t.Error("expected the record to link the transaction")
		}
	})

	t.Run("second execution fails without a second transaction", func(t *testing.T) {
		transaction := entity.NewTransaction(date, planned.Amount, planned.Kind, planned.CategoryID, "Planned transaction")
		record := entity.NewOccurrenceRecord(planned.ID, date, entity.OccurrenceStatusExecuted, &transaction.ID)

		err := repo.CreateRecordWithTransaction(ctx, record, transaction)
		if !errors.Is(err, domainerror.ErrOccurrenceAlreadySettled) {
			t.Fatalf("expected ErrOccurrenceAlreadySettled, got %v", err)
		}

		if _, err := NewTransactionRepository(db).FindByID(ctx, transaction.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected the transaction rolled back, got %v", err)
		}
	})

	t.Run("records in window", func(t *testing.T) {
		skipDate := date.AddDate(0, 1, 0)
		skip := entity.NewOccurrenceRecord(planned.ID, skipDate, entity.OccurrenceStatusSkipped, nil)
		if err := repo.CreateRecord(ctx, skip); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		records, err := repo.FindRecords(ctx, []uuid.UUID{planned.ID}, date, skipDate)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("delete record", func(t *testing.T) {
		skipDate := date.AddDate(0, 1, 0)
		if err := repo.DeleteRecord(ctx, planned.ID, skipDate); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.DeleteRecord(ctx, planned.ID, skipDate); !errors.Is(err, domainerror.ErrOccurrenceRecordNotFound) {
			t.Errorf("expected ErrOccurrenceRecordNotFound, got %v", err)
		}
	})
}

func TestPendingPaymentRepositoryExecuteAndLink(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingPaymentRepository(db)
	ctx := context.Background()

	categoryID := seedCategory(t, db)
	plannedDate := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	payment := entity.NewPendingPayment(
		decimal.NewFromInt(500),
		categoryID,
		"car repair",
		entity.PendingPaymentPriorityHigh,
		&plannedDate,
	)
	if err := repo.Create(ctx, payment); err != nil {
		t.Fatalf("failed to seed pending payment: %v", err)
	}

	t.Run("active payment", func(t *testing.T) {
		transaction := entity.NewTransaction(plannedDate, payment.Amount, entity.TransactionKindExpense, categoryID, payment.Description)

		if err := repo.ExecuteAndLink(ctx, payment, transaction); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.FindByID(ctx, payment.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entity.PendingPaymentStatusExecuted {
			t.Errorf("expected executed, got %s", stored.Status)
		}
		if stored.TransactionID == nil || *stored.TransactionID != transaction.ID {
			t.Error("expected the payment to link the transaction")
		}
	})

	t.Run("executed payment rolls back the transaction", func(t *testing.T) {
		transaction := entity.NewTransaction(plannedDate, payment.Amount, entity.TransactionKindExpense, categoryID, payment.Description)

		err := repo.ExecuteAndLink(ctx, payment, transaction)
		if !errors.Is(err, domainerror.ErrPendingPaymentNotActive) {
			t.Fatalf("expected ErrPendingPaymentNotActive, got %v", err)
		}

		if _, err := NewTransactionRepository(db).FindByID(ctx, transaction.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected the transaction rolled back, got %v", err)
		}
	})
}

func TestPendingPaymentRepositoryCancel(t *testing.T) {
	db := newTestDB(t)
	repo := NewPendingPaymentRepository(db)
	ctx := context.Background()

	categoryID := seedCategory(t, db)
	plannedDate := time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC)

	newPayment := func(t *testing.T) *entity.PendingPayment {
		t.Helper()
		payment := entity.NewPendingPayment(
			decimal.NewFromInt(500),
			categoryID,
			"car repair",
			entity.PendingPaymentPriorityHigh,
			&plannedDate,
		)
		if err := repo.Create(ctx, payment); err != nil {
			t.Fatalf("failed to seed pending payment: %v", err)
		}
		return payment
	}

	t.Run("active payment", func(t *testing.T) {
		payment := newPayment(t)

		cancelled, err := repo.Cancel(ctx, payment.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cancelled.Status != entity.PendingPaymentStatusCancelled {
			t.Errorf("expected cancelled, got %s", cancelled.Status)
		}
	})

	t.Run("cancelled payment cannot be cancelled again", func(t *testing.T) {
		payment := newPayment(t)

		if _, err := repo.Cancel(ctx, payment.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.Cancel(ctx, payment.ID); !errors.Is(err, domainerror.ErrPendingPaymentNotActive) {
			t.Fatalf("expected ErrPendingPaymentNotActive, got %v", err)
		}
	})

	t.Run("executed payment keeps its transaction link", func(t *testing.T) {
		payment := newPayment(t)
		transaction := entity.NewTransaction(plannedDate, payment.Amount, entity.TransactionKindExpense, categoryID, payment.Description)
		if err := repo.ExecuteAndLink(ctx, payment, transaction); err != nil {
			t.Fatalf("failed to execute payment: %v", err)
		}

		if _, err := repo.Cancel(ctx, payment.ID); !errors.Is(err, domainerror.ErrPendingPaymentNotActive) {
			t.Fatalf("expected ErrPendingPaymentNotActive, got %v", err)
		}

		stored, err := repo.FindByID(ctx, payment.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stored.Status != entity.PendingPaymentStatusExecuted {
			t.Errorf("expected the payment to stay executed, got %s", stored.Status)
		}
		if stored.TransactionID == nil || *stored.TransactionID != transaction.ID {
			t.Error("expected the transaction link to survive the cancel attempt")
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		if _, err := repo.Cancel(ctx, uuid.New()); !errors.Is(err, domainerror.ErrPendingPaymentNotFound) {
			t.Fatalf("expected ErrPendingPaymentNotFound, got %v", err)
		}
	})
}
