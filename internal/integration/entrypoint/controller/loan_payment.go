// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/application/usecase/loanpayment"
	"github.com/cashplan/backend/internal/domain/entity"
	"github.com/cashplan/backend/internal/integration/entrypoint/dto"
)

// LoanPaymentController handles loan payment endpoints.
type LoanPaymentController struct {
	createUseCase      *loanpayment.CreatePaymentUseCase
	listUseCase        *loanpayment.ListPaymentsUseCase
	executeUseCase     *loanpayment.ExecutePaymentUseCase
	cancelUseCase      *loanpayment.CancelPaymentUseCase
	markOverdueUseCase *loanpayment.MarkOverdueUseCase
	balanceUseCase     *loanpayment.LoanBalanceUseCase
	statisticsUseCase  *loanpayment.LoanStatisticsUseCase
}

// NewLoanPaymentController creates a new loan payment controller instance.
func NewLoanPaymentController(
	createUseCase *loanpayment.CreatePaymentUseCase,
	listUseCase *loanpayment.ListPaymentsUseCase,
	executeUseCase *loanpayment.ExecutePaymentUseCase,
	cancelUseCase *loanpayment.CancelPaymentUseCase,
	markOverdueUseCase *loanpayment.MarkOverdueUseCase,
	balanceUseCase *loanpayment.LoanBalanceUseCase,
	statisticsUseCase *loanpayment.LoanStatisticsUseCase,
) *LoanPaymentController {
	return &LoanPaymentController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		executeUseCase:     executeUseCase,
		cancelUseCase:      cancelUseCase,
		markOverdueUseCase: markOverdueUseCase,
		balanceUseCase:     balanceUseCase,
		statisticsUseCase:  statisticsUseCase,
	}
}

// Create handles POST /loan-payments requests.
func (c *LoanPaymentController) Create(ctx *gin.Context) {
	var req dto.CreateLoanPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	loanID, err := uuid.Parse(req.LoanID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	scheduledDate, err := dto.ParseDate(req.ScheduledDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid scheduled_date format, expected YYYY-MM-DD"})
		return
	}

	principal, err := decimal.NewFromString(req.PrincipalAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid principal_amount format"})
		return
	}

	interest, err := decimal.NewFromString(req.InterestAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid interest_amount format"})
		return
	}

	input := loanpayment.CreatePaymentInput{
		LoanID:          loanID,
		ScheduledDate:   scheduledDate,
		PrincipalAmount: principal,
		InterestAmount:  interest,
	}
	if req.TotalAmount != nil {
		total, err := decimal.NewFromString(*req.TotalAmount)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid total_amount format"})
			return
		}
		input.TotalAmount = total
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLoanPaymentResponse(output.Payment))
}

// List handles GET /loan-payments requests.
func (c *LoanPaymentController) List(ctx *gin.Context) {
	var filter adapter.LoanPaymentFilter

	if loanStr := ctx.Query("loan_id"); loanStr != "" {
		loanID, err := uuid.Parse(loanStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan_id format"})
			return
		}
		filter.LoanID = &loanID
	}
	for _, statusStr := range ctx.QueryArray("status") {
		filter.Statuses = append(filter.Statuses, entity.LoanPaymentStatus(statusStr))
	}
	if startStr := ctx.Query("start_date"); startStr != "" {
		start, err := dto.ParseDate(startStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid start_date format, expected YYYY-MM-DD"})
			return
		}
		filter.StartDate = &start
	}
	if endStr := ctx.Query("end_date"); endStr != "" {
		end, err := dto.ParseDate(endStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		filter.EndDate = &end
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), loanpayment.ListPaymentsInput{Filter: filter})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve loan payments"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanPaymentListResponse(output.Payments))
}

// ListByLoan handles GET /loans/:id/payments requests.
func (c *LoanPaymentController) ListByLoan(ctx *gin.Context) {
	loanID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	filter := adapter.LoanPaymentFilter{LoanID: &loanID}
	for _, statusStr := range ctx.QueryArray("status") {
		filter.Statuses = append(filter.Statuses, entity.LoanPaymentStatus(statusStr))
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), loanpayment.ListPaymentsInput{Filter: filter})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve loan payments"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanPaymentListResponse(output.Payments))
}

// Execute handles POST /loan-payments/:id/execute requests.
func (c *LoanPaymentController) Execute(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan payment ID format"})
		return
	}

	var req dto.ExecuteLoanPaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	executedAmount, err := decimal.NewFromString(req.ExecutedAmount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid executed_amount format"})
		return
	}

	executedDate, err := dto.ParseDate(req.ExecutedDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid executed_date format, expected YYYY-MM-DD"})
		return
	}

	output, err := c.executeUseCase.Execute(ctx.Request.Context(), loanpayment.ExecutePaymentInput{
		PaymentID:      id,
		ExecutedAmount: executedAmount,
		ExecutedDate:   executedDate,
	})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanPaymentResponse(output.Payment))
}

// Cancel handles POST /loan-payments/:id/cancel requests.
func (c *LoanPaymentController) Cancel(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan payment ID format"})
		return
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), loanpayment.CancelPaymentInput{PaymentID: id})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanPaymentResponse(output.Payment))
}

// MarkOverdue handles POST /loan-payments/mark-overdue requests.
func (c *LoanPaymentController) MarkOverdue(ctx *gin.Context) {
	var req dto.MarkOverdueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var input loanpayment.MarkOverdueInput
	if req.AsOf != nil {
		asOf, err := dto.ParseDate(*req.AsOf)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid as_of format, expected YYYY-MM-DD"})
			return
		}
		input.AsOf = asOf
	}

	output, err := c.markOverdueUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to run overdue sweep"})
		return
	}

	ctx.JSON(http.StatusOK, dto.MarkOverdueResponse{TransitionedCount: output.TransitionedCount})
}

// Balance handles GET /loans/:id/balance requests.
func (c *LoanPaymentController) Balance(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	output, err := c.balanceUseCase.Execute(ctx.Request.Context(), loanpayment.LoanBalanceInput{LoanID: id})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoanBalanceResponse{
		PrincipalBalance: output.PrincipalBalance.String(),
		AccruedInterest:  output.AccruedInterest.String(),
		TotalBalance:     output.TotalBalance.String(),
	})
}

// Statistics handles GET /loans/:id/statistics requests.
func (c *LoanPaymentController) Statistics(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	output, err := c.statisticsUseCase.Execute(ctx.Request.Context(), loanpayment.LoanStatisticsInput{LoanID: id})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoanStatisticsResponse{
		TotalInterest:      output.TotalInterest.String(),
		PaidInterest:       output.PaidInterest.String(),
		OverpaymentPercent: output.OverpaymentPercent.String(),
	})
}
