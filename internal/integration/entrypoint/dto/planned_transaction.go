// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cashplan/backend/internal/domain/entity"
	"github.com/cashplan/backend/internal/domain/recurrence"
)

// RecurrenceRuleRequest represents a recurrence rule in request bodies.
type RecurrenceRuleRequest struct {
	Type      string  `json:"type" binding:"required,oneof=none daily weekly monthly yearly custom"`
	Interval  int     `json:"interval,omitempty"`
	Unit      string  `json:"unit,omitempty" binding:"omitempty,oneof=days weeks months years"`
	End       string  `json:"end" binding:"required,oneof=never until_date after_count"`
	UntilDate *string `json:"until_date,omitempty"`
	Count     int     `json:"count,omitempty"`
}

// ToRule converts the request rule to a domain recurrence rule.
func (r RecurrenceRuleRequest) ToRule() (recurrence.Rule, error) {
	rule := recurrence.Rule{
		Type:     recurrence.Type(r.Type),
		Interval: r.Interval,
		Unit:     recurrence.Unit(r.Unit),
		End:      recurrence.EndCondition(r.End),
		Count:    r.Count,
	}
	if r.UntilDate != nil {
		until, err := ParseDate(*r.UntilDate)
		if err != nil {
			return recurrence.Rule{}, err
		}
		rule.UntilDate = until
	}
	return rule, nil
}

// RecurrenceRuleResponse represents a recurrence rule in API responses.
type RecurrenceRuleResponse struct {
	Type      string  `json:"type"`
	Interval  int     `json:"interval,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	End       string  `json:"end"`
	UntilDate *string `json:"until_date,omitempty"`
	Count     int     `json:"count,omitempty"`
}

// ToRecurrenceRuleResponse converts a domain rule to its response DTO.
func ToRecurrenceRuleResponse(rule recurrence.Rule) RecurrenceRuleResponse {
	response := RecurrenceRuleResponse{
		Type:     string(rule.Type),
		Interval: rule.Interval,
		Unit:     string(rule.Unit),
		End:      string(rule.End),
		Count:    rule.Count,
	}
	if rule.End == recurrence.EndUntilDate {
		until := FormatDate(rule.UntilDate)
		response.UntilDate = &until
	}
	return response
}

// CreatePlannedTransactionRequest represents the request body for planned
// transaction creation.
type CreatePlannedTransactionRequest struct {
	Amount     string                `json:"amount" binding:"required"`
	Kind       string                `json:"kind" binding:"required,oneof=expense income"`
	CategoryID string                `json:"category_id" binding:"required,uuid"`
	StartDate  string                `json:"start_date" binding:"required"`
	EndDate    *string               `json:"end_date,omitempty"`
	Rule       RecurrenceRuleRequest `json:"rule" binding:"required"`
}

// UpdatePlannedTransactionRequest represents the request body for planned
// transaction update. Absent fields keep their stored values.
type UpdatePlannedTransactionRequest struct {
	Amount     *string                `json:"amount,omitempty"`
	CategoryID *string                `json:"category_id,omitempty" binding:"omitempty,uuid"`
	EndDate    *string                `json:"end_date,omitempty"`
	Rule       *RecurrenceRuleRequest `json:"rule,omitempty"`
	Active     *bool                  `json:"active,omitempty"`
}

// PlannedTransactionResponse represents a planned transaction in API responses.
type PlannedTransactionResponse struct {
	ID         string                 `json:"id"`
	Amount     string                 `json:"amount"`
	Kind       string                 `json:"kind"`
	CategoryID string                 `json:"category_id"`
	StartDate  string                 `json:"start_date"`
	EndDate    *string                `json:"end_date,omitempty"`
	Rule       RecurrenceRuleResponse `json:"rule"`
	Active     bool                   `json:"active"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// PlannedTransactionListResponse represents the response for listing planned
// transactions.
type PlannedTransactionListResponse struct {
	PlannedTransactions []PlannedTransactionResponse `json:"planned_transactions"`
}

// ToPlannedTransactionResponse converts a domain PlannedTransaction entity to
// its response DTO.
func ToPlannedTransactionResponse(planned *entity.PlannedTransaction) PlannedTransactionResponse {
	return PlannedTransactionResponse{
		ID:         planned.ID.String(),
		Amount:     planned.Amount.String(),
		Kind:       string(planned.Kind),
		CategoryID: planned.CategoryID.String(),
		StartDate:  FormatDate(planned.StartDate),
		EndDate:    FormatDatePtr(planned.EndDate),
		Rule:       ToRecurrenceRuleResponse(planned.Rule),
		Active:     planned.Active,
		CreatedAt:  planned.CreatedAt,
		UpdatedAt:  planned.UpdatedAt,
	}
}

// ToPlannedTransactionListResponse converts domain planned transactions to a
// list response.
func ToPlannedTransactionListResponse(planned []*entity.PlannedTransaction) PlannedTransactionListResponse {
	responses := make([]PlannedTransactionResponse, len(planned))
	for i, p := range planned {
		responses[i] = ToPlannedTransactionResponse(p)
	}
	return PlannedTransactionListResponse{PlannedTransactions: responses}
}

// OccurrenceResponse represents a single derived occurrence in API responses.
type OccurrenceResponse struct {
	PlannedTransactionID string  `json:"planned_transaction_id"`
	Date                 string  `json:"date"`
	Amount               string  `json:"amount"`
	Kind                 string  `json:"kind"`
	CategoryID           string  `json:"category_id"`
	Status               string  `json:"status"`
	TransactionID        *string `json:"transaction_id,omitempty"`
}

// OccurrenceListResponse represents the response for listing occurrences.
type OccurrenceListResponse struct {
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// OccurrenceActionRequest represents the request body for executing, skipping
// or unskipping one occurrence.
type OccurrenceActionRequest struct {
	Date string `json:"date" binding:"required"`
}

// ToOccurrenceResponse converts a domain Occurrence to its response DTO.
func ToOccurrenceResponse(occurrence *entity.Occurrence) OccurrenceResponse {
	response := OccurrenceResponse{
		PlannedTransactionID: occurrence.PlannedTransactionID.String(),
		Date:                 FormatDate(occurrence.Date),
		Amount:               occurrence.Amount.String(),
		Kind:                 string(occurrence.Kind),
		CategoryID:           occurrence.CategoryID.String(),
		Status:               string(occurrence.Status),
	}
	if occurrence.TransactionID != nil {
		id := occurrence.TransactionID.String()
		response.TransactionID = &id
	}
	return response
}

// ToOccurrenceListResponse converts domain occurrences to a list response.
func ToOccurrenceListResponse(occurrences []*entity.Occurrence) OccurrenceListResponse {
	responses := make([]OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		responses[i] = ToOccurrenceResponse(o)
	}
	return OccurrenceListResponse{Occurrences: responses}
}
