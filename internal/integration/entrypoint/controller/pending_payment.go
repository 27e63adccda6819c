// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/application/usecase/pendingpayment"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/integration/entrypoint/dto"
)

// PendingPaymentController handles pending payment endpoints.
type PendingPaymentController struct {
	createUseCase  *pendingpayment.CreatePendingPaymentUseCase
	listUseCase    *pendingpayment.ListPendingPaymentsUseCase
	executeUseCase *pendingpayment.ExecutePendingPaymentUseCase
	cancelUseCase  *pendingpayment.CancelPendingPaymentUseCase
}

// NewPendingPaymentController creates a new pending payment controller
// instance.
func NewPendingPaymentController(
	createUseCase *pendingpayment.CreatePendingPaymentUseCase,
	listUseCase *pendingpayment.ListPendingPaymentsUseCase,
	executeUseCase *pendingpayment.ExecutePendingPaymentUseCase,
	cancelUseCase *pendingpayment.CancelPendingPaymentUseCase,
) *PendingPaymentController {
	return &PendingPaymentController{
		createUseCase:  createUseCase,
		listUseCase:    listUseCase,
		executeUseCase: executeUseCase,
		cancelUseCase:  cancelUseCase,
	}
}

// Create handles POST /pending-payments requests.
func (c *PendingPaymentController) Create(ctx *gin.Context) {
	var req dto.CreatePendingPaymentRequest
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

	input := pendingpayment.CreatePendingPaymentInput{
		Amount:      amount,
		CategoryID:  categoryID,
		Description: req.Description,
		Priority:    entity.PendingPaymentPriority(req.Priority),
	}
	if req.PlannedDate != nil {
		plannedDate, err := dto.ParseDate(*req.PlannedDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid planned_date format, expected YYYY-MM-DD"})
			return
		}
		input.PlannedDate = &plannedDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePendingPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPendingPaymentResponse(output.Payment))
}

// List handles GET /pending-payments requests.
func (c *PendingPaymentController) List(ctx *gin.Context) {
	var filter adapter.PendingPaymentFilter

	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.PendingPaymentStatus(statusStr)
		filter.Status = &status
	}
	if priorityStr := ctx.Query("priority"); priorityStr != "" {
		priority := entity.PendingPaymentPriority(priorityStr)
		filter.Priority = &priority
	}
	if datedStr := ctx.Query("dated"); datedStr != "" {
		dated := datedStr == "true"
		filter.HasPlannedDate = &dated
	}

	payments, err := c.listUseCase.Execute(ctx.Request.Context(), filter)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve pending payments"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingPaymentListResponse(payments))
}

// Execute handles POST /pending-payments/:id/execute requests.
func (c *PendingPaymentController) Execute(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid pending payment ID format"})
		return
	}

	var req dto.ExecutePendingPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	output, err := c.executeUseCase.Execute(ctx.Request.Context(), pendingpayment.ExecutePendingPaymentInput{
		PaymentID: id,
		Date:      date,
	})
	if err != nil {
		c.handlePendingPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"pending_payment": dto.ToPendingPaymentResponse(output.Payment),
		"transaction":     dto.ToTransactionResponse(output.Transaction),
	})
}

// Cancel handles POST /pending-payments/:id/cancel requests.
func (c *PendingPaymentController) Cancel(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid pending payment ID format"})
		return
	}

	cancelled, err := c.cancelUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		c.handlePendingPaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPendingPaymentResponse(cancelled))
}

// handlePendingPaymentError maps pending payment domain errors to HTTP
// responses.
func (c *PendingPaymentController) handlePendingPaymentError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrPendingPaymentNotFound),
		errors.Is(err, domainerror.ErrCategoryNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrInvalidPendingPaymentAmount),
		errors.Is(err, domainerror.ErrInvalidPendingPaymentPriority):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrPendingPaymentNotActive):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
