// Package forecast contains the forward-looking balance aggregation use cases.
package forecast

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/application/usecase/planned"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// CashGapsInput represents the date range to scan for cash gaps.
type CashGapsInput struct {
	StartDate time.Time
	EndDate   time.Time
}

// CashGapsOutput lists the dates on which the forecast balance is negative.
type CashGapsOutput struct {
	Gaps []time.Time
}

// CashGapsUseCase scans a date range for days with a negative forecast
// balance. It pulls each obligation source once and walks the range with a
// running prefix sum, so cost is one repository round-trip per source plus
// one pass over the days, not one forecast query per day.
type CashGapsUseCase struct {
	transactionRepo adapter.TransactionRepository
	occurrences     *planned.ListOccurrencesUseCase
	pendingRepo     adapter.PendingPaymentRepository
	loanPaymentRepo adapter.LoanPaymentRepository
}

// NewCashGapsUseCase creates a new CashGapsUseCase instance.
func NewCashGapsUseCase(
	transactionRepo adapter.TransactionRepository,
	occurrences *planned.ListOccurrencesUseCase,
	pendingRepo adapter.PendingPaymentRepository,
	loanPaymentRepo adapter.LoanPaymentRepository,
) *CashGapsUseCase {
	return &CashGapsUseCase{
		transactionRepo: transactionRepo,
		occurrences:     occurrences,
		pendingRepo:     pendingRepo,
		loanPaymentRepo: loanPaymentRepo,
	}
}

// Execute scans the range.
func (uc *CashGapsUseCase) Execute(ctx context.Context, input CashGapsInput) (*CashGapsOutput, error) {
	start := entity.DateOnly(input.StartDate)
	end := entity.DateOnly(input.EndDate)
	if end.Before(start) {
		return nil, domainerror.ErrInvalidForecastRange
	}

	deltas, err := uc.collectDeltas(ctx, end)
	if err != nil {
		return nil, err
	}

	// Balance carried into the scan: everything due strictly before start.
	balance := decimal.Zero
	for date, amount := range deltas {
		if date.Before(start) {
			balance = balance.Add(amount)
		}
	}

	var gaps []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if delta, ok := deltas[d]; ok {
			balance = balance.Add(delta)
		}
		if balance.IsNegative() {
			gaps = append(gaps, d)
		}
	}

	return &CashGapsOutput{Gaps: gaps}, nil
}

// collectDeltas gathers every signed cash flow due on or before end, keyed
// by date.
func (uc *CashGapsUseCase) collectDeltas(ctx context.Context, end time.Time) (map[time.Time]decimal.Decimal, error) {
	deltas := make(map[time.Time]decimal.Decimal)
	add := func(date time.Time, amount decimal.Decimal) {
		deltas[date] = deltas[date].Add(amount)
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{EndDate: &end})
	if err != nil {
		return nil, domainerror.NewDataUnavailableError(err)
	}
	for _, t := range transactions {
		add(t.Date, t.SignedAmount())
	}

	occ, err := uc.occurrences.Execute(ctx, planned.ListOccurrencesInput{
		WindowStart: forecastEpoch,
		WindowEnd:   end,
		Statuses:    []entity.OccurrenceStatus{entity.OccurrenceStatusPending},
	})
	if err != nil {
		return nil, domainerror.NewDataUnavailableError(err)
	}
	for _, o := range occ.Occurrences {
		add(o.Date, o.SignedAmount())
	}

	active := entity.PendingPaymentStatusActive
	hasDate := true
	pendings, err := uc.pendingRepo.FindByFilter(ctx, adapter.PendingPaymentFilter{
		Status:         &active,
		HasPlannedDate: &hasDate,
	})
	if err != nil {
		return nil, domainerror.NewDataUnavailableError(err)
	}
	for _, p := range pendings {
		if p.PlannedDate != nil && !p.PlannedDate.After(end) {
			add(*p.PlannedDate, p.Amount.Neg())
		}
	}

	openPayments, err := uc.loanPaymentRepo.FindByFilter(ctx, adapter.LoanPaymentFilter{
		Statuses: []entity.LoanPaymentStatus{
			entity.LoanPaymentStatusPending,
			entity.LoanPaymentStatusOverdue,
		},
		EndDate: &end,
	})
	if err != nil {
		return nil, domainerror.NewDataUnavailableError(err)
	}
	for _, p := range openPayments {
		add(p.ScheduledDate, p.TotalAmount.Neg())
	}

	return deltas, nil
}
