package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

func TestLoanRepositoryLinkDisbursement(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	categoryID := seedCategory(t, db)

	transaction := entity.NewTransaction(loan.IssueDate, loan.Amount, entity.TransactionKindIncome, categoryID, "Loan disbursement")

	if err := repo.LinkDisbursement(ctx, loan, transaction); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := repo.FindByID(ctx, loan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.DisbursementTransactionID == nil || *stored.DisbursementTransactionID != transaction.ID {
		t.Error("expected the loan to link the disbursement transaction")
	}

	t.Run("second disbursement fails", func(t *testing.T) {
		second := entity.NewTransaction(loan.IssueDate, loan.Amount, entity.TransactionKindIncome, categoryID, "Loan disbursement")

		err := repo.LinkDisbursement(ctx, loan, second)
		if !errors.Is(err, domainerror.ErrDisbursementAlreadyLinked) {
			t.Fatalf("expected ErrDisbursementAlreadyLinked, got %v", err)
		}

		if _, err := NewTransactionRepository(db).FindByID(ctx, second.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected the second transaction rolled back, got %v", err)
		}
	})
}

func TestLoanRepositorySettleFullRepayment(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	paymentRepo := NewLoanPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	categoryID := seedCategory(t, db)

	open1 := seedPayment(t, db, loan.ID, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))
	open2 := seedPayment(t, db, loan.ID, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	if _, err := paymentRepo.MarkOverdue(ctx, time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	transaction := entity.NewTransaction(
		time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(100000),
		entity.TransactionKindExpense,
		categoryID,
		"Early loan repayment",
	)

	cancelled, err := repo.SettleFullRepayment(ctx, loan, transaction)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled != 2 {
		t.Errorf("expected 2 cancelled payments, got %d", cancelled)
	}

	stored, err := repo.FindByID(ctx, loan.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Status != entity.LoanStatusPaidOff {
		t.Errorf("expected loan paid off, got %s", stored.Status)
	}

	for _, p := range []*entity.LoanPayment{open1, open2} {
		payment, err := paymentRepo.FindByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payment.Status != entity.LoanPaymentStatusCancelled {
			t.Errorf("expected payment cancelled, got %s", payment.Status)
		}
	}

	t.Run("repaying a settled loan fails", func(t *testing.T) {
		again := entity.NewTransaction(
			time.Date(2026, time.February, 21, 0, 0, 0, 0, time.UTC),
			decimal.NewFromInt(100000),
			entity.TransactionKindExpense,
			categoryID,
			"Early loan repayment",
		)

		_, err := repo.SettleFullRepayment(ctx, loan, again)
		if !errors.Is(err, domainerror.ErrLoanNotActive) {
			t.Fatalf("expected ErrLoanNotActive, got %v", err)
		}

		if _, err := NewTransactionRepository(db).FindByID(ctx, again.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected the transaction rolled back, got %v", err)
		}
	})
}

func TestLoanRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	paymentRepo := NewLoanPaymentRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)
	payment := seedPayment(t, db, loan.ID, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC))

	if err := repo.Delete(ctx, loan.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByID(ctx, loan.ID); !errors.Is(err, domainerror.ErrLoanNotFound) {
		t.Errorf("expected ErrLoanNotFound, got %v", err)
	}
	if _, err := paymentRepo.FindByID(ctx, payment.ID); !errors.Is(err, domainerror.ErrLoanPaymentNotFound) {
		t.Errorf("expected ErrLoanPaymentNotFound, got %v", err)
	}
}

func TestLoanRepositoryCountActiveByLender(t *testing.T) {
	db := newTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	loan := seedLoan(t, db)

	count, err := repo.CountActiveByLender(ctx, loan.LenderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 active loan, got %d", count)
	}

	loan.Status = entity.LoanStatusPaidOff
	if err := repo.Update(ctx, loan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err = repo.CountActiveByLender(ctx, loan.LenderID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 active loans, got %d", count)
	}
}
