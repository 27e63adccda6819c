// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/usecase/planned"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/domain/recurrence"
	"github.com/cashplan/backend/internal/integration/entrypoint/dto"
)

// PlannedTransactionController handles planned transaction and occurrence
// endpoints.
type PlannedTransactionController struct {
	createUseCase          *planned.CreatePlannedTransactionUseCase
	listUseCase            *planned.ListPlannedTransactionsUseCase
	updateUseCase          *planned.UpdatePlannedTransactionUseCase
	deleteUseCase          *planned.DeletePlannedTransactionUseCase
	listOccurrencesUseCase *planned.ListOccurrencesUseCase
	executeUseCase         *planned.ExecuteOccurrenceUseCase
	skipUseCase            *planned.SkipOccurrenceUseCase
	unskipUseCase          *planned.UnskipOccurrenceUseCase
}

// NewPlannedTransactionController creates a new planned transaction
// controller instance.
func NewPlannedTransactionController(
	createUseCase *planned.CreatePlannedTransactionUseCase,
	listUseCase *planned.ListPlannedTransactionsUseCase,
	updateUseCase *planned.UpdatePlannedTransactionUseCase,
	deleteUseCase *planned.DeletePlannedTransactionUseCase,
	listOccurrencesUseCase *planned.ListOccurrencesUseCase,
	executeUseCase *planned.ExecuteOccurrenceUseCase,
	skipUseCase *planned.SkipOccurrenceUseCase,
	unskipUseCase *planned.UnskipOccurrenceUseCase,
) *PlannedTransactionController {
	return &PlannedTransactionController{
		createUseCase:          createUseCase,
		listUseCase:            listUseCase,
		updateUseCase:          updateUseCase,
		deleteUseCase:          deleteUseCase,
		listOccurrencesUseCase: listOccurrencesUseCase,
		executeUseCase:         executeUseCase,
		skipUseCase:            skipUseCase,
		unskipUseCase:          unskipUseCase,
	}
}

// Create handles POST /planned requests.
func (c *PlannedTransactionController) Create(ctx *gin.Context) {
	var req dto.CreatePlannedTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid amount format"})
		return
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID format"})
		return
	}

	startDate, err := dto.ParseDate(req.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid start_date format, expected YYYY-MM-DD"})
		return
	}

	var endDate *time.Time
	if req.EndDate != nil {
		end, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		endDate = &end
	}

	rule, err := req.Rule.ToRule()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid until_date format, expected YYYY-MM-DD"})
		return
	}

	input := planned.CreatePlannedTransactionInput{
		Amount:     amount,
		Kind:       entity.TransactionKind(req.Kind),
		CategoryID: categoryID,
		StartDate:  startDate,
		EndDate:    endDate,
		Rule:       rule,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPlannedTransactionResponse(output.Planned))
}

// List handles GET /planned requests.
func (c *PlannedTransactionController) List(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	plannedTransactions, err := c.listUseCase.Execute(ctx.Request.Context(), activeOnly)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve planned transactions"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlannedTransactionListResponse(plannedTransactions))
}

// Update handles PATCH /planned/:id requests.
func (c *PlannedTransactionController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid planned transaction ID format"})
		return
	}

	var req dto.UpdatePlannedTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	input := planned.UpdatePlannedTransactionInput{
		ID:     id,
		Active: req.Active,
	}

	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid amount format"})
			return
		}
		input.Amount = &amount
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid category ID format"})
			return
		}
		input.CategoryID = &categoryID
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		input.EndDate = &endDate
	}
	if req.Rule != nil {
		rule, err := req.Rule.ToRule()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid until_date format, expected YYYY-MM-DD"})
			return
		}
		input.Rule = &rule
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlannedTransactionResponse(updated))
}

// Delete handles DELETE /planned/:id requests.
func (c *PlannedTransactionController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid planned transaction ID format"})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListOccurrences handles GET /planned/occurrences requests. The window is
// required; status is an optional comma-free repeated query parameter.
func (c *PlannedTransactionController) ListOccurrences(ctx *gin.Context) {
	start, err := dto.ParseDate(ctx.Query("start"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid start format, expected YYYY-MM-DD"})
		return
	}
	end, err := dto.ParseDate(ctx.Query("end"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end format, expected YYYY-MM-DD"})
		return
	}

	input := planned.ListOccurrencesInput{
		WindowStart: start,
		WindowEnd:   end,
	}
	for _, statusStr := range ctx.QueryArray("status") {
		input.Statuses = append(input.Statuses, entity.OccurrenceStatus(statusStr))
	}

	output, err := c.listOccurrencesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOccurrenceListResponse(output.Occurrences))
}

// ExecuteOccurrence handles POST /planned/:id/occurrences/execute requests.
func (c *PlannedTransactionController) ExecuteOccurrence(ctx *gin.Context) {
	id, date, ok := c.parseOccurrenceAction(ctx)
	if !ok {
		return
	}

	output, err := c.executeUseCase.Execute(ctx.Request.Context(), planned.ExecuteOccurrenceInput{
		PlannedTransactionID: id,
		Date:                 date,
	})
	if err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"occurrence":  dto.ToOccurrenceResponse(output.Occurrence),
		"transaction": dto.ToTransactionResponse(output.Transaction),
	})
}

// SkipOccurrence handles POST /planned/:id/occurrences/skip requests.
func (c *PlannedTransactionController) SkipOccurrence(ctx *gin.Context) {
	id, date, ok := c.parseOccurrenceAction(ctx)
	if !ok {
		return
	}

	_, err := c.skipUseCase.Execute(ctx.Request.Context(), planned.SkipOccurrenceInput{
		PlannedTransactionID: id,
		Date:                 date,
	})
	if err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// UnskipOccurrence handles POST /planned/:id/occurrences/unskip requests.
func (c *PlannedTransactionController) UnskipOccurrence(ctx *gin.Context) {
	id, date, ok := c.parseOccurrenceAction(ctx)
	if !ok {
		return
	}

	err := c.unskipUseCase.Execute(ctx.Request.Context(), planned.UnskipOccurrenceInput{
		PlannedTransactionID: id,
		Date:                 date,
	})
	if err != nil {
		c.handlePlannedError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *PlannedTransactionController) parseOccurrenceAction(ctx *gin.Context) (uuid.UUID, time.Time, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid planned transaction ID format"})
		return uuid.Nil, time.Time{}, false
	}

	var req dto.OccurrenceActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return uuid.Nil, time.Time{}, false
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return uuid.Nil, time.Time{}, false
	}

	return id, date, true
}

// handlePlannedError maps planned transaction domain errors to HTTP responses.
func (c *PlannedTransactionController) handlePlannedError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrPlannedTransactionNotFound),
		errors.Is(err, domainerror.ErrCategoryNotFound),
		errors.Is(err, domainerror.ErrOccurrenceRecordNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrInvalidPlannedAmount),
		errors.Is(err, domainerror.ErrInvalidPlannedDates),
		errors.Is(err, domainerror.ErrOccurrenceNotInSeries),
		errors.Is(err, recurrence.ErrInvalidWindow),
		isRuleError(err):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrOccurrenceAlreadySettled),
		errors.Is(err, domainerror.ErrOccurrenceNotSkipped),
		errors.Is(err, domainerror.ErrPlannedTransactionInactive):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}

func isRuleError(err error) bool {
	return errors.Is(err, recurrence.ErrInvalidType) ||
		errors.Is(err, recurrence.ErrInvalidInterval) ||
		errors.Is(err, recurrence.ErrInvalidUnit) ||
		errors.Is(err, recurrence.ErrInvalidEndCondition) ||
		errors.Is(err, recurrence.ErrMissingUntilDate) ||
		errors.Is(err, recurrence.ErrInvalidCount)
}
