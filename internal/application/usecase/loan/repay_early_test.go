package loan

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

type fakeLoanRepo struct {
	loans        map[uuid.UUID]*entity.Loan
	lenders      map[uuid.UUID]*entity.Lender
	transactions []*entity.Transaction
	cancelOpen   int64
}

func newFakeLoanRepo(loans ...*entity.Loan) *fakeLoanRepo {
	repo := &fakeLoanRepo{
		loans:   make(map[uuid.UUID]*entity.Loan),
		lenders: make(map[uuid.UUID]*entity.Lender),
	}
	for _, l := range loans {
		repo.loans[l.ID] = l
	}
	return repo
}

func (r *fakeLoanRepo) Create(ctx context.Context, loan *entity.Loan) error {
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Loan, error) {
	loan, ok := r.loans[id]
	if !ok {
		return nil, domainerror.ErrLoanNotFound
	}
	return loan, nil
}

func (r *fakeLoanRepo) FindByIDWithLender(ctx context.Context, id uuid.UUID) (*entity.LoanWithLender, error) {
	loan, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.LoanWithLender{Loan: loan, Lender: r.lenders[loan.LenderID]}, nil
}

func (r *fakeLoanRepo) List(ctx context.Context, status *entity.LoanStatus) ([]*entity.Loan, error) {
	var result []*entity.Loan
	for _, l := range r.loans {
		if status != nil && l.Status != *status {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (r *fakeLoanRepo) Update(ctx context.Context, loan *entity.Loan) error {
	r.loans[loan.ID] = loan
	return nil
}

func (r *fakeLoanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.loans, id)
	return nil
}

func (r *fakeLoanRepo) CountActiveByLender(ctx context.Context, lenderID uuid.UUID) (int64, error) {
	var count int64
	for _, l := range r.loans {
		if l.LenderID == lenderID && l.Status == entity.LoanStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeLoanRepo) LinkDisbursement(ctx context.Context, loan *entity.Loan, transaction *entity.Transaction) error {
	stored, ok := r.loans[loan.ID]
	if !ok {
		return domainerror.ErrLoanNotFound
	}
	if stored.DisbursementTransactionID != nil {
		return domainerror.ErrDisbursementAlreadyLinked
	}
	r.transactions = append(r.transactions, transaction)
	stored.DisbursementTransactionID = &transaction.ID
	return nil
}

func (r *fakeLoanRepo) SettleFullRepayment(ctx context.Context, loan *entity.Loan, transaction *entity.Transaction) (int64, error) {
	stored, ok := r.loans[loan.ID]
	if !ok {
		return 0, domainerror.ErrLoanNotFound
	}
	if stored.Status != entity.LoanStatusActive {
		return 0, domainerror.ErrLoanNotActive
	}
	r.transactions = append(r.transactions, transaction)
	stored.Status = entity.LoanStatusPaidOff
	return r.cancelOpen, nil
}

type fakeLenderRepo struct {
	lenders map[uuid.UUID]*entity.Lender
}

func newFakeLenderRepo(lenders ...*entity.Lender) *fakeLenderRepo {
	repo := &fakeLenderRepo{lenders: make(map[uuid.UUID]*entity.Lender)}
	for _, l := range lenders {
		repo.lenders[l.ID] = l
	}
	return repo
}

func (r *fakeLenderRepo) Create(ctx context.Context, lender *entity.Lender) error {
	r.lenders[lender.ID] = lender
	return nil
}

func (r *fakeLenderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lender, error) {
	lender, ok := r.lenders[id]
	if !ok {
		return nil, domainerror.ErrLenderNotFound
	}
	return lender, nil
}

func (r *fakeLenderRepo) List(ctx context.Context) ([]*entity.Lender, error) {
	var result []*entity.Lender
	for _, l := range r.lenders {
		result = append(result, l)
	}
	return result, nil
}

func (r *fakeLenderRepo) Update(ctx context.Context, lender *entity.Lender) error { return nil }

func (r *fakeLenderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.lenders, id)
	return nil
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

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (r *fakeTransactionRepo) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.transactions = append(r.transactions, transaction)
	return nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *fakeTransactionRepo) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	return &entity.TransactionTotals{}, nil
}

func (r *fakeTransactionRepo) Update(ctx context.Context, transaction *entity.Transaction) error {
	return nil
}

func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func activeLoan() *entity.Loan {
	return entity.NewLoan(
		uuid.New(),
		decimal.NewFromInt(100000),
		nil,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		nil,
	)
}

func TestRepayEarly(t *testing.T) {
	date := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	t.Run("full repayment settles the loan", func(t *testing.T) {
		loan := activeLoan()
		repo := newFakeLoanRepo(loan)
		repo.cancelOpen = 3
		uc := NewRepayEarlyUseCase(repo, &fakeTransactionRepo{}, newFakeCategoryRepo(), nil)

		output, err := uc.Execute(context.Background(), RepayEarlyInput{
			LoanID: loan.ID,
			Amount: decimal.NewFromInt(95000),
			Date:   date,
			Full:   true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.CancelledPayments != 3 {
			t.Errorf("expected 3 cancelled payments, got %d", output.CancelledPayments)
		}
		if loan.Status != entity.LoanStatusPaidOff {
			t.Errorf("expected loan paid off, got %s", loan.Status)
		}
		if output.Transaction.Kind != entity.TransactionKindExpense {
			t.Errorf("expected expense transaction, got %s", output.Transaction.Kind)
		}
		if len(repo.transactions) != 1 {
			t.Errorf("expected 1 transaction through the loan repo, got %d", len(repo.transactions))
		}
	})

	t.Run("partial repayment keeps the loan active", func(t *testing.T) {
		loan := activeLoan()
		repo := newFakeLoanRepo(loan)
		txRepo := &fakeTransactionRepo{}
		uc := NewRepayEarlyUseCase(repo, txRepo, newFakeCategoryRepo(), nil)

		output, err := uc.Execute(context.Background(), RepayEarlyInput{
			LoanID: loan.ID,
			Amount: decimal.NewFromInt(20000),
			Date:   date,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.CancelledPayments != 0 {
			t.Errorf("expected no cancelled payments, got %d", output.CancelledPayments)
		}
		if loan.Status != entity.LoanStatusActive {
			t.Errorf("expected loan to stay active, got %s", loan.Status)
		}
		if len(txRepo.transactions) != 1 {
			t.Errorf("expected 1 ledger transaction, got %d", len(txRepo.transactions))
		}
	})

	t.Run("paid off loan", func(t *testing.T) {
		loan := activeLoan()
		loan.Status = entity.LoanStatusPaidOff
		uc := NewRepayEarlyUseCase(newFakeLoanRepo(loan), &fakeTransactionRepo{}, newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), RepayEarlyInput{
			LoanID: loan.ID,
			Amount: decimal.NewFromInt(1000),
			Date:   date,
			Full:   true,
		})
		if !errors.Is(err, domainerror.ErrLoanNotActive) {
			t.Errorf("expected ErrLoanNotActive, got %v", err)
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		loan := activeLoan()
		uc := NewRepayEarlyUseCase(newFakeLoanRepo(loan), &fakeTransactionRepo{}, newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), RepayEarlyInput{
			LoanID: loan.ID,
			Amount: decimal.Zero,
			Date:   date,
		})
		if !errors.Is(err, domainerror.ErrInvalidRepaymentAmount) {
			t.Errorf("expected ErrInvalidRepaymentAmount, got %v", err)
		}
	})
}

func TestDisburseLoan(t *testing.T) {
	t.Run("links the income transaction once", func(t *testing.T) {
		loan := activeLoan()
		repo := newFakeLoanRepo(loan)
		uc := NewDisburseLoanUseCase(repo, newFakeCategoryRepo(), nil)

		output, err := uc.Execute(context.Background(), DisburseLoanInput{LoanID: loan.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Transaction.Kind != entity.TransactionKindIncome {
			t.Errorf("expected income transaction, got %s", output.Transaction.Kind)
		}
		if !output.Transaction.Amount.Equal(loan.Amount) {
			t.Errorf("expected amount %s, got %s", loan.Amount, output.Transaction.Amount)
		}
		if !output.Transaction.Date.Equal(loan.IssueDate) {
			t.Errorf("expected issue date used, got %s", output.Transaction.Date.Format("2006-01-02"))
		}

		_, err = uc.Execute(context.Background(), DisburseLoanInput{LoanID: loan.ID})
		if !errors.Is(err, domainerror.ErrDisbursementAlreadyLinked) {
			t.Errorf("expected ErrDisbursementAlreadyLinked, got %v", err)
		}
	})

	t.Run("unknown loan", func(t *testing.T) {
		uc := NewDisburseLoanUseCase(newFakeLoanRepo(), newFakeCategoryRepo(), nil)

		_, err := uc.Execute(context.Background(), DisburseLoanInput{LoanID: uuid.New()})
		if !errors.Is(err, domainerror.ErrLoanNotFound) {
			t.Errorf("expected ErrLoanNotFound, got %v", err)
		}
	})
}

func TestCreateLoanValidation(t *testing.T) {
	lender := entity.NewLender("Test Bank", "")
	issue := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	uc := NewCreateLoanUseCase(newFakeLoanRepo(), newFakeLenderRepo(lender))

	t.Run("valid loan", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), CreateLoanInput{
			LenderID:  lender.ID,
			Amount:    decimal.NewFromInt(100000),
			IssueDate: issue,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Loan.Status != entity.LoanStatusActive {
			t.Errorf("expected active loan, got %s", output.Loan.Status)
		}
	})

	t.Run("interest rate out of range", func(t *testing.T) {
		rate := decimal.NewFromInt(120)
		_, err := uc.Execute(context.Background(), CreateLoanInput{
			LenderID:     lender.ID,
			Amount:       decimal.NewFromInt(100000),
			InterestRate: &rate,
			IssueDate:    issue,
		})
		if !errors.Is(err, domainerror.ErrInvalidInterestRate) {
			t.Errorf("expected ErrInvalidInterestRate, got %v", err)
		}
	})

	t.Run("end date before issue date", func(t *testing.T) {
		end := issue.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), CreateLoanInput{
			LenderID:  lender.ID,
			Amount:    decimal.NewFromInt(100000),
			IssueDate: issue,
			EndDate:   &end,
		})
		if !errors.Is(err, domainerror.ErrInvalidLoanDates) {
			t.Errorf("expected ErrInvalidLoanDates, got %v", err)
		}
	})

	t.Run("unknown lender", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateLoanInput{
			LenderID:  uuid.New(),
			Amount:    decimal.NewFromInt(100000),
			IssueDate: issue,
		})
		if !errors.Is(err, domainerror.ErrLenderNotFound) {
			t.Errorf("expected ErrLenderNotFound, got %v", err)
		}
	})
}

func TestDeleteLenderGuard(t *testing.T) {
	lender := entity.NewLender("Test Bank", "")
	loan := activeLoan()
	loan.LenderID = lender.ID

	lenderRepo := newFakeLenderRepo(lender)
	loanRepo := newFakeLoanRepo(loan)
	uc := NewDeleteLenderUseCase(lenderRepo, loanRepo)

	if err := uc.Execute(context.Background(), lender.ID); !errors.Is(err, domainerror.ErrLenderHasActiveLoans) {
		t.Fatalf("expected ErrLenderHasActiveLoans, got %v", err)
	}

	loan.Status = entity.LoanStatusPaidOff
	if err := uc.Execute(context.Background(), lender.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := lenderRepo.FindByID(context.Background(), lender.ID); !errors.Is(err, domainerror.ErrLenderNotFound) {
		t.Errorf("expected lender deleted, got %v", err)
	}
}
