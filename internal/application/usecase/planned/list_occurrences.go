// Package planned contains planned transaction and occurrence use cases.
package planned

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
)

// ListOccurrencesInput represents the window to expand occurrences over.
type ListOccurrencesInput struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Statuses    []entity.OccurrenceStatus
}

// ListOccurrencesOutput represents the expanded occurrences, ordered by date.
type ListOccurrencesOutput struct {
	Occurrences []*entity.Occurrence
}

// ListOccurrencesUseCase expands every active planned transaction over a
// window and merges the stored occurrence records: an occurrence without a
// record is pending, one with a record carries the recorded status and
// transaction link.
type ListOccurrencesUseCase struct {
	plannedRepo adapter.PlannedTransactionRepository
}

// NewListOccurrencesUseCase creates a new ListOccurrencesUseCase instance.
func NewListOccurrencesUseCase(plannedRepo adapter.PlannedTransactionRepository) *ListOccurrencesUseCase {
	return &ListOccurrencesUseCase{plannedRepo: plannedRepo}
}

// Execute expands the occurrences.
func (uc *ListOccurrencesUseCase) Execute(ctx context.Context, input ListOccurrencesInput) (*ListOccurrencesOutput, error) {
	windowStart := entity.DateOnly(input.WindowStart)
	windowEnd := entity.DateOnly(input.WindowEnd)
	if windowEnd.Before(windowStart) {
		return nil, domainerror.ErrInvalidForecastRange
	}

	actives, err := uc.plannedRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list planned transactions: %w", err)
	}
	if len(actives) == 0 {
		return &ListOccurrencesOutput{}, nil
	}

	ids := make([]uuid.UUID, len(actives))
	for i, p := range actives {
		ids[i] = p.ID
	}

	records, err := uc.plannedRepo.FindRecords(ctx, ids, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load occurrence records: %w", err)
	}

	type recordKey struct {
		plannedID uuid.UUID
		date      time.Time
	}
	recordIndex := make(map[recordKey]*entity.OccurrenceRecord, len(records))
	for _, r := range records {
		recordIndex[recordKey{r.PlannedTransactionID, r.Date}] = r
	}

	var occurrences []*entity.Occurrence
	for _, p := range actives {
		dates, err := occurrenceDates(p, windowStart, windowEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to expand planned transaction %s: %w", p.ID, err)
		}

		for _, date := range dates {
			occ := &entity.Occurrence{
				PlannedTransactionID: p.ID,
				Date:                 date,
				Amount:               p.Amount,
				Kind:                 p.Kind,
				CategoryID:           p.CategoryID,
				Status:               entity.OccurrenceStatusPending,
			}
			if r, ok := recordIndex[recordKey{p.ID, date}]; ok {
				occ.Status = r.Status
				occ.TransactionID = r.TransactionID
			}
			if !matchesStatus(occ.Status, input.Statuses) {
				continue
			}
			occurrences = append(occurrences, occ)
		}
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Date.Before(occurrences[j].Date)
	})

	return &ListOccurrencesOutput{Occurrences: occurrences}, nil
}

func matchesStatus(status entity.OccurrenceStatus, wanted []entity.OccurrenceStatus) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if status == w {
			return true
		}
	}
	return false
}
