// Package forecast contains the forward-looking balance aggregation use cases.
//
// The forecast at date D is the realized ledger up to D plus every not yet
// realized obligation due on or before D: pending planned occurrences signed
// by kind, active pending payments as outflow, and open loan payments as
// outflow. Realized transactions are ground truth; everything still pending
// is assumed to execute on schedule, which makes the forecast conservative.
package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/application/usecase/planned"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// forecastEpoch is the lower bound used when aggregating "everything up to a
// date": no obligations predate it.
var forecastEpoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// ForecastBalanceInput represents the input for the forecast query.
type ForecastBalanceInput struct {
	AsOf time.Time
}

// ForecastBalanceOutput represents the projected balance as of a date.
type ForecastBalanceOutput struct {
	AsOf    time.Time
	Balance decimal.Decimal
}

// ForecastBalanceUseCase computes the projected ledger balance as of a date.
type ForecastBalanceUseCase struct {
	transactionRepo adapter.TransactionRepository
	occurrences     *planned.ListOccurrencesUseCase
	pendingRepo     adapter.PendingPaymentRepository
	loanPaymentRepo adapter.LoanPaymentRepository
	cache           adapter.ForecastCache
}

// NewForecastBalanceUseCase creates a new ForecastBalanceUseCase instance.
func NewForecastBalanceUseCase(
	transactionRepo adapter.TransactionRepository,
	occurrences *planned.ListOccurrencesUseCase,
	pendingRepo adapter.PendingPaymentRepository,
	loanPaymentRepo adapter.LoanPaymentRepository,
	cache adapter.ForecastCache,
) *ForecastBalanceUseCase {
	return &ForecastBalanceUseCase{
		transactionRepo: transactionRepo,
		occurrences:     occurrences,
		pendingRepo:     pendingRepo,
		loanPaymentRepo: loanPaymentRepo,
		cache:           cache,
	}
}

// Execute computes the forecast balance. A persistence failure surfaces as a
// data-unavailable error, never as a silent zero.
func (uc *ForecastBalanceUseCase) Execute(ctx context.Context, input ForecastBalanceInput) (*ForecastBalanceOutput, error) {
	asOf := entity.DateOnly(input.AsOf)

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, asOf); err != nil {
			slog.Debug("Forecast cache read failed", "error", err)
		} else if cached != nil {
			return &ForecastBalanceOutput{AsOf: asOf, Balance: *cached}, nil
		}
	}

	balance, err := uc.compute(ctx, asOf)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, asOf, balance); err != nil {
			slog.Debug("Forecast cache write failed", "error", err)
		}
	}

	return &ForecastBalanceOutput{AsOf: asOf, Balance: balance}, nil
}

func (uc *ForecastBalanceUseCase) compute(ctx context.Context, asOf time.Time) (decimal.Decimal, error) {
	totals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{EndDate: &asOf})
	if err != nil {
		return decimal.Zero, domainerror.NewDataUnavailableError(err)
	}
	balance := totals.NetTotal

	occ, err := uc.occurrences.Execute(ctx, planned.ListOccurrencesInput{
		WindowStart: forecastEpoch,
		WindowEnd:   asOf,
		Statuses:    []entity.OccurrenceStatus{entity.OccurrenceStatusPending},
	})
	if err != nil {
		return decimal.Zero, domainerror.NewDataUnavailableError(err)
	}
	for _, o := range occ.Occurrences {
		balance = balance.Add(o.SignedAmount())
	}

	active := entity.PendingPaymentStatusActive
	hasDate := true
	pendings, err := uc.pendingRepo.FindByFilter(ctx, adapter.PendingPaymentFilter{
		Status:         &active,
		HasPlannedDate: &hasDate,
	})
	if err != nil {
		return decimal.Zero, domainerror.NewDataUnavailableError(err)
	}
	for _, p := range pendings {
		if p.PlannedDate != nil && !p.PlannedDate.After(asOf) {
			balance = balance.Sub(p.Amount)
		}
	}

	openPayments, err := uc.loanPaymentRepo.FindByFilter(ctx, adapter.LoanPaymentFilter{
		Statuses: []entity.LoanPaymentStatus{
			entity.LoanPaymentStatusPending,
			entity.LoanPaymentStatusOverdue,
		},
		EndDate: &asOf,
	})
	if err != nil {
		return decimal.Zero, domainerror.NewDataUnavailableError(err)
	}
	for _, p := range openPayments {
		balance = balance.Sub(p.TotalAmount)
	}

	return balance, nil
}
