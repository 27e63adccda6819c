package planned

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/domain/recurrence"
)

type stubPlannedRepo struct {
	planned      map[uuid.UUID]*entity.PlannedTransaction
	records      []*entity.OccurrenceRecord
	transactions []*entity.Transaction
}

func newStubPlannedRepo(planned ...*entity.PlannedTransaction) *stubPlannedRepo {
	repo := &stubPlannedRepo{planned: make(map[uuid.UUID]*entity.PlannedTransaction)}
	for _, p := range planned {
		repo.planned[p.ID] = p
	}
	return repo
}

func (r *stubPlannedRepo) Create(ctx context.Context, p *entity.PlannedTransaction) error {
	r.planned[p.ID] = p
	return nil
}

func (r *stubPlannedRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.PlannedTransaction, error) {
	p, ok := r.planned[id]
	if !ok {
		return nil, domainerror.ErrPlannedTransactionNotFound
	}
	return p, nil
}

func (r *stubPlannedRepo) List(ctx context.Context, activeOnly bool) ([]*entity.PlannedTransaction, error) {
	var result []*entity.PlannedTransaction
	for _, p := range r.planned {
		if activeOnly && !p.Active {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (r *stubPlannedRepo) Update(ctx context.Context, p *entity.PlannedTransaction) error {
	r.planned[p.ID] = p
	return nil
}

func (r *stubPlannedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.planned, id)
	return nil
}

func (r *stubPlannedRepo) FindRecords(ctx context.Context, plannedIDs []uuid.UUID, start, end time.Time) ([]*entity.OccurrenceRecord, error) {
	var result []*entity.OccurrenceRecord
	for _, rec := range r.records {
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (r *stubPlannedRepo) FindRecord(ctx context.Context, plannedID uuid.UUID, date time.Time) (*entity.OccurrenceRecord, error) {
	for _, rec := range r.records {
		if rec.PlannedTransactionID == plannedID && rec.Date.Equal(date) {
			return rec, nil
		}
	}
	return nil, domainerror.ErrOccurrenceRecordNotFound
}

func (r *stubPlannedRepo) CreateRecord(ctx context.Context, record *entity.OccurrenceRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *stubPlannedRepo) CreateRecordWithTransaction(ctx context.Context, record *entity.OccurrenceRecord, transaction *entity.Transaction) error {
	if _, err := r.FindRecord(ctx, record.PlannedTransactionID, record.Date); err == nil {
		return domainerror.ErrOccurrenceAlreadySettled
	}
	r.transactions = append(r.transactions, transaction)
	r.records = append(r.records, record)
	return nil
}

func (r *stubPlannedRepo) DeleteRecord(ctx context.Context, plannedID uuid.UUID, date time.Time) error {
	for i, rec := range r.records {
		if rec.PlannedTransactionID == plannedID && rec.Date.Equal(date) {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrOccurrenceRecordNotFound
}

func monthlyRent(startDate time.Time) *entity.PlannedTransaction {
	return entity.NewPlannedTransaction(
		decimal.NewFromInt(700),
		entity.TransactionKindExpense,
		uuid.New(),
		startDate,
		nil,
		recurrence.Every(recurrence.TypeMonthly),
	)
}

func TestExecuteOccurrence(t *testing.T) {
	start := time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC)

	t.Run("pending occurrence", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		uc := NewExecuteOccurrenceUseCase(repo, nil)

		output, err := uc.Execute(context.Background(), ExecuteOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start.AddDate(0, 1, 0),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Occurrence.Status != entity.OccurrenceStatusExecuted {
			t.Errorf("expected executed status, got %s", output.Occurrence.Status)
		}
		if output.Transaction.Kind != entity.TransactionKindExpense {
			t.Errorf("expected expense transaction, got %s", output.Transaction.Kind)
		}
		if !output.Transaction.Amount.Equal(rent.Amount) {
			t.Errorf("expected amount %s, got %s", rent.Amount, output.Transaction.Amount)
		}
		if len(repo.records) != 1 || len(repo.transactions) != 1 {
			t.Errorf("expected 1 record and 1 transaction, got %d and %d", len(repo.records), len(repo.transactions))
		}
		if repo.records[0].TransactionID == nil || *repo.records[0].TransactionID != output.Transaction.ID {
			t.Error("expected the record to link the created transaction")
		}
	})

	t.Run("date not in series", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		uc := NewExecuteOccurrenceUseCase(repo, nil)

		_, err := uc.Execute(context.Background(), ExecuteOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start.AddDate(0, 0, 1),
		})
		if !errors.Is(err, domainerror.ErrOccurrenceNotInSeries) {
			t.Errorf("expected ErrOccurrenceNotInSeries, got %v", err)
		}
	})

	t.Run("already settled", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		repo.records = []*entity.OccurrenceRecord{
			entity.NewOccurrenceRecord(rent.ID, start, entity.OccurrenceStatusSkipped, nil),
		}
		uc := NewExecuteOccurrenceUseCase(repo, nil)

		_, err := uc.Execute(context.Background(), ExecuteOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		})
		if !errors.Is(err, domainerror.ErrOccurrenceAlreadySettled) {
			t.Errorf("expected ErrOccurrenceAlreadySettled, got %v", err)
		}
		if len(repo.transactions) != 0 {
			t.Errorf("expected no transaction, got %d", len(repo.transactions))
		}
	})

	t.Run("inactive series", func(t *testing.T) {
		rent := monthlyRent(start)
		rent.Active = false
		repo := newStubPlannedRepo(rent)
		uc := NewExecuteOccurrenceUseCase(repo, nil)

		_, err := uc.Execute(context.Background(), ExecuteOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		})
		if !errors.Is(err, domainerror.ErrPlannedTransactionInactive) {
			t.Errorf("expected ErrPlannedTransactionInactive, got %v", err)
		}
	})

	t.Run("unknown planned transaction", func(t *testing.T) {
		uc := NewExecuteOccurrenceUseCase(newStubPlannedRepo(), nil)

		_, err := uc.Execute(context.Background(), ExecuteOccurrenceInput{
			PlannedTransactionID: uuid.New(),
			Date:                 start,
		})
		if !errors.Is(err, domainerror.ErrPlannedTransactionNotFound) {
			t.Errorf("expected ErrPlannedTransactionNotFound, got %v", err)
		}
	})
}

func TestSkipAndUnskipOccurrence(t *testing.T) {
	start := time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC)

	t.Run("skip then unskip", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		skip := NewSkipOccurrenceUseCase(repo, nil)
		unskip := NewUnskipOccurrenceUseCase(repo, nil)

		record, err := skip.Execute(context.Background(), SkipOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Status != entity.OccurrenceStatusSkipped {
			t.Errorf("expected skipped status, got %s", record.Status)
		}
		if record.TransactionID != nil {
			t.Error("expected no transaction link on a skipped occurrence")
		}

		if err := unskip.Execute(context.Background(), UnskipOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.records) != 0 {
			t.Errorf("expected record removed, got %d", len(repo.records))
		}
	})

	t.Run("skip twice", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		skip := NewSkipOccurrenceUseCase(repo, nil)

		if _, err := skip.Execute(context.Background(), SkipOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := skip.Execute(context.Background(), SkipOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		})
		if !errors.Is(err, domainerror.ErrOccurrenceAlreadySettled) {
			t.Errorf("expected ErrOccurrenceAlreadySettled, got %v", err)
		}
	})

	t.Run("unskip executed occurrence", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		txID := uuid.New()
		repo.records = []*entity.OccurrenceRecord{
			entity.NewOccurrenceRecord(rent.ID, start, entity.OccurrenceStatusExecuted, &txID),
		}
		unskip := NewUnskipOccurrenceUseCase(repo, nil)

		err := unskip.Execute(context.Background(), UnskipOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		})
		if !errors.Is(err, domainerror.ErrOccurrenceNotSkipped) {
			t.Errorf("expected ErrOccurrenceNotSkipped, got %v", err)
		}
		if len(repo.records) != 1 {
			t.Error("expected executed record untouched")
		}
	})

	t.Run("unskip without a record", func(t *testing.T) {
		rent := monthlyRent(start)
		repo := newStubPlannedRepo(rent)
		unskip := NewUnskipOccurrenceUseCase(repo, nil)

		err := unskip.Execute(context.Background(), UnskipOccurrenceInput{
			PlannedTransactionID: rent.ID,
			Date:                 start,
		})
		if !errors.Is(err, domainerror.ErrOccurrenceNotSkipped) {
			t.Errorf("expected ErrOccurrenceNotSkipped, got %v", err)
		}
	})
}

func TestListOccurrencesMergesRecords(t *testing.T) {
	start := time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC)
	rent := monthlyRent(start)
	repo := newStubPlannedRepo(rent)

	txID := uuid.New()
	repo.records = []*entity.OccurrenceRecord{
		entity.NewOccurrenceRecord(rent.ID, start, entity.OccurrenceStatusExecuted, &txID),
		entity.NewOccurrenceRecord(rent.ID, start.AddDate(0, 1, 0), entity.OccurrenceStatusSkipped, nil),
	}

	uc := NewListOccurrencesUseCase(repo)

	output, err := uc.Execute(context.Background(), ListOccurrencesInput{
		WindowStart: start,
		WindowEnd:   start.AddDate(0, 2, 0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(output.Occurrences) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(output.Occurrences))
	}
	if output.Occurrences[0].Status != entity.OccurrenceStatusExecuted {
		t.Errorf("expected first occurrence executed, got %s", output.Occurrences[0].Status)
	}
	if output.Occurrences[1].Status != entity.OccurrenceStatusSkipped {
		t.Errorf("expected second occurrence skipped, got %s", output.Occurrences[1].Status)
	}
	if output.Occurrences[2].Status != entity.OccurrenceStatusPending {
		t.Errorf("expected third occurrence pending, got %s", output.Occurrences[2].Status)
	}

	t.Run("status filter", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListOccurrencesInput{
			WindowStart: start,
			WindowEnd:   start.AddDate(0, 2, 0),
			Statuses:    []entity.OccurrenceStatus{entity.OccurrenceStatusPending},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(output.Occurrences) != 1 {
			t.Fatalf("expected 1 pending occurrence, got %d", len(output.Occurrences))
		}
		if !output.Occurrences[0].Date.Equal(start.AddDate(0, 2, 0)) {
			t.Errorf("expected the September occurrence, got %s", output.Occurrences[0].Date.Format("2006-01-02"))
		}
	})
}
