package loanpayment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

type fakePaymentRepo struct {
	payments     map[uuid.UUID]*entity.LoanPayment
	transactions []*entity.Transaction
}

func newFakePaymentRepo(payments ...*entity.LoanPayment) *fakePaymentRepo {
	repo := &fakePaymentRepo{payments: make(map[uuid.UUID]*entity.LoanPayment)}
	for _, p := range payments {
		repo.payments[p.ID] = p
	}
	return repo
}

func (r *fakePaymentRepo) Create(ctx context.Context, payment *entity.LoanPayment) error {
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.LoanPayment, error) {
	payment, ok := r.payments[id]
	if !ok {
		return nil, domainerror.ErrLoanPaymentNotFound
	}
	clone := *payment
	return &clone, nil
}

func (r *fakePaymentRepo) FindByLoan(ctx context.Context, loanID uuid.UUID) ([]*entity.LoanPayment, error) {
	var result []*entity.LoanPayment
	for _, p := range r.payments {
		if p.LoanID == loanID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakePaymentRepo) FindByFilter(ctx context.Context, filter adapter.LoanPaymentFilter) ([]*entity.LoanPayment, error) {
	var result []*entity.LoanPayment
	for _, p := range r.payments {
		result = append(result, p)
	}
	return result, nil
}

func (r *fakePaymentRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var count int64
	for _, p := range r.payments {
		if p.Status == entity.LoanPaymentStatusPending && p.ScheduledDate.Before(asOf) {
			p.Status = entity.LoanPaymentStatusOverdue
			count++
		}
	}
	return count, nil
}

func (r *fakePaymentRepo) ExecuteAndLink(ctx context.Context, payment *entity.LoanPayment, transaction *entity.Transaction) error {
	stored, ok := r.payments[payment.ID]
	if !ok {
		return domainerror.ErrLoanPaymentNotFound
	}
	if !stored.IsOpen() {
		return domainerror.NewPaymentStateError(string(stored.Status), string(payment.Status))
	}
	r.transactions = append(r.transactions, transaction)
	clone := *payment
	r.payments[payment.ID] = &clone
	return nil
}

func (r *fakePaymentRepo) Cancel(ctx context.Context, id uuid.UUID) (*entity.LoanPayment, error) {
	stored, ok := r.payments[id]
	if !ok {
		return nil, domainerror.ErrLoanPaymentNotFound
	}
	if !stored.IsOpen() {
		return nil, domainerror.NewPaymentStateError(string(stored.Status), string(entity.LoanPaymentStatusCancelled))
	}
	stored.Status = entity.LoanPaymentStatusCancelled
	clone := *stored
	return &clone, nil
}

type fakeCategoryRepo struct {
	system map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		system: map[string]*entity.Category{
			entity.SystemCategoryLoanPayments:      entity.NewCategory(entity.SystemCategoryLoanPayments, entity.CategoryKindExpense, true),
			entity.SystemCategoryLoanDisbursements: entity.NewCategory(entity.SystemCategoryLoanDisbursements, entity.CategoryKindIncome, true),
		},
	}
}

func (r *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error { return nil }

func (r *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range r.system {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) FindSystemByName(ctx context.Context, name string) (*entity.Category, error) {
	category, ok := r.system[name]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return category, nil
}

func (r *fakeCategoryRepo) List(ctx context.Context, kind *entity.CategoryKind) ([]*entity.Category, error) {
	return nil, nil
}

func (r *fakeCategoryRepo) Update(ctx context.Context, category *entity.Category) error { return nil }
func (r *fakeCategoryRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (r *fakeCategoryRepo) CountReferences(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeForecastCache struct {
	invalidations int
}

func (c *fakeForecastCache) Get(ctx context.Context, date time.Time) (*decimal.Decimal, error) {
	return nil, nil
}

func (c *fakeForecastCache) Set(ctx context.Context, date time.Time, balance decimal.Decimal) error {
	return nil
}

func (c *fakeForecastCache) Invalidate(ctx context.Context) error {
	c.invalidations++
	return nil
}

func newPendingPayment(scheduled time.Time) *entity.LoanPayment {
	return entity.NewLoanPayment(uuid.New(), scheduled, decimal.NewFromInt(8000), decimal.NewFromInt(1000))
}

func TestExecutePayment(t *testing.T) {
	scheduled := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)

	t.Run("on time", func(t *testing.T) {
		payment := newPendingPayment(scheduled)
		repo := newFakePaymentRepo(payment)
		cache := &fakeForecastCache{}
		uc := NewExecutePaymentUseCase(repo, newFakeCategoryRepo(), cache)

		output, err := uc.Execute(context.Background(), ExecutePaymentInput{
			PaymentID:      payment.ID,
			ExecutedAmount: decimal.NewFromInt(9000),
			ExecutedDate:   scheduled,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Payment.Status != entity.LoanPaymentStatusExecuted {
			t.Errorf("expected status executed, got %s", output.Payment.Status)
		}
		if output.Payment.OverdueDays != 0 {
			t.Errorf("expected 0 overdue days, got %d", output.Payment.OverdueDays)
		}
		if output.Payment.TransactionID == nil {
			t.Fatal("expected a linked transaction")
		}
		if len(repo.transactions) != 1 {
			t.Fatalf("expected 1 recorded transaction, got %d", len(repo.transactions))
		}
		tx := repo.transactions[0]
		if tx.Kind != entity.TransactionKindExpense {
			t.Errorf("expected expense transaction, got %s", tx.Kind)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(9000)) {
			t.Errorf("expected transaction amount 9000, got %s", tx.Amount)
		}
		if cache.invalidations != 1 {
			t.Errorf("expected forecast cache invalidated once, got %d", cache.invalidations)
		}
	})

	t.Run("late execution", func(t *testing.T) {
		payment := newPendingPayment(scheduled)
		payment.Status = entity.LoanPaymentStatusOverdue
		repo := newFakePaymentRepo(payment)
		uc := NewExecutePaymentUseCase(repo, newFakeCategoryRepo(), nil)

		output, err := uc.Execute(context.Background(), ExecutePaymentInput{
			PaymentID:      payment.ID,
			ExecutedAmount: decimal.NewFromInt(9000),
			ExecutedDate:   scheduled.AddDate(0, 0, 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Payment.Status != entity.LoanPaymentStatusExecutedLate {
			t.Errorf("expected status executed_late, got %s", output.Payment.Status)
		}
		if output.Payment.OverdueDays != 5 {
			t.Errorf("expected 5 overdue days, got %d", output.Payment.OverdueDays)
		}
	})

	t.Run("already executed", func(t *testing.T) {
		payment := newPendingPayment(scheduled)
		payment.Status = entity.LoanPaymentStatusExecuted
		repo := newFakePaymentRepo(payment)
		uc := NewExecutePaymentUseCase(repo, newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), ExecutePaymentInput{
			PaymentID:      payment.ID,
			ExecutedAmount: decimal.NewFromInt(9000),
			ExecutedDate:   scheduled,
		})

		var stateErr *domainerror.PaymentStateError
		if !errors.As(err, &stateErr) {
			t.Fatalf("expected PaymentStateError, got %v", err)
		}
		if stateErr.Current != string(entity.LoanPaymentStatusExecuted) {
			t.Errorf("expected current state executed, got %s", stateErr.Current)
		}
		if len(repo.transactions) != 0 {
			t.Errorf("expected no transaction recorded, got %d", len(repo.transactions))
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		payment := newPendingPayment(scheduled)
		payment.Status = entity.LoanPaymentStatusCancelled
		repo := newFakePaymentRepo(payment)
		uc := NewExecutePaymentUseCase(repo, newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), ExecutePaymentInput{
			PaymentID:      payment.ID,
			ExecutedAmount: decimal.NewFromInt(9000),
			ExecutedDate:   scheduled,
		})

		if !errors.Is(err, domainerror.ErrPaymentNotTransitionable) {
			t.Errorf("expected ErrPaymentNotTransitionable, got %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		payment := newPendingPayment(scheduled)
		repo := newFakePaymentRepo(payment)
		uc := NewExecutePaymentUseCase(repo, newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), ExecutePaymentInput{
			PaymentID:      payment.ID,
			ExecutedAmount: decimal.Zero,
			ExecutedDate:   scheduled,
		})

		if !errors.Is(err, domainerror.ErrInvalidExecutedAmount) {
			t.Errorf("expected ErrInvalidExecutedAmount, got %v", err)
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		uc := NewExecutePaymentUseCase(newFakePaymentRepo(), newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), ExecutePaymentInput{
			PaymentID:      uuid.New(),
			ExecutedAmount: decimal.NewFromInt(9000),
			ExecutedDate:   scheduled,
		})

		if !errors.Is(err, domainerror.ErrLoanPaymentNotFound) {
			t.Errorf("expected ErrLoanPaymentNotFound, got %v", err)
		}
	})
}

func TestMarkOverdue(t *testing.T) {
	asOf := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

	past := newPendingPayment(asOf.AddDate(0, 0, -10))
	due := newPendingPayment(asOf)
	future := newPendingPayment(asOf.AddDate(0, 0, 10))
	executed := newPendingPayment(asOf.AddDate(0, 0, -20))
	executed.Status = entity.LoanPaymentStatusExecuted

	repo := newFakePaymentRepo(past, due, future, executed)
	cache := &fakeForecastCache{}
	uc := NewMarkOverdueUseCase(repo, cache)

	output, err := uc.Execute(context.Background(), MarkOverdueInput{AsOf: asOf})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.TransitionedCount != 1 {
		t.Errorf("expected 1 transition, got %d", output.TransitionedCount)
	}
	if past.Status != entity.LoanPaymentStatusOverdue {
		t.Errorf("expected past payment overdue, got %s", past.Status)
	}
	if due.Status != entity.LoanPaymentStatusPending {
		t.Errorf("expected payment due today to stay pending, got %s", due.Status)
	}
	if future.Status != entity.LoanPaymentStatusPending {
		t.Errorf("expected future payment to stay pending, got %s", future.Status)
	}
	if executed.Status != entity.LoanPaymentStatusExecuted {
		t.Errorf("expected executed payment untouched, got %s", executed.Status)
	}
	if cache.invalidations != 1 {
		t.Errorf("expected forecast cache invalidated once, got %d", cache.invalidations)
	}

	t.Run("second sweep is idempotent", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), MarkOverdueInput{AsOf: asOf})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.TransitionedCount != 0 {
			t.Errorf("expected 0 transitions, got %d", output.TransitionedCount)
		}
	})
}
