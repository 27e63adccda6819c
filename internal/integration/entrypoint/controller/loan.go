// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cashplan/backend/internal/application/usecase/loan"
	"github.com/cashplan/backend/internal/domain/entity"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/integration/entrypoint/dto"
)

// LenderController handles lender endpoints.
type LenderController struct {
	createUseCase *loan.CreateLenderUseCase
	listUseCase   *loan.ListLendersUseCase
	deleteUseCase *loan.DeleteLenderUseCase
}

// NewLenderController creates a new lender controller instance.
func NewLenderController(
	createUseCase *loan.CreateLenderUseCase,
	listUseCase *loan.ListLendersUseCase,
	deleteUseCase *loan.DeleteLenderUseCase,
) *LenderController {
	return &LenderController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /lenders requests.
func (c *LenderController) Create(ctx *gin.Context) {
	var req dto.CreateLenderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), loan.CreateLenderInput{
		Name:        req.Name,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLenderResponse(output.Lender))
}

// List handles GET /lenders requests.
func (c *LenderController) List(ctx *gin.Context) {
	lenders, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve lenders"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLenderListResponse(lenders))
}

// Delete handles DELETE /lenders/:id requests.
func (c *LenderController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid lender ID format"})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// LoanController handles loan endpoints.
type LoanController struct {
	createUseCase     *loan.CreateLoanUseCase
	getUseCase        *loan.GetLoanUseCase
	listUseCase       *loan.ListLoansUseCase
	deleteUseCase     *loan.DeleteLoanUseCase
	disburseUseCase   *loan.DisburseLoanUseCase
	repayEarlyUseCase *loan.RepayEarlyUseCase
}

// NewLoanController creates a new loan controller instance.
func NewLoanController(
	createUseCase *loan.CreateLoanUseCase,
	getUseCase *loan.GetLoanUseCase,
	listUseCase *loan.ListLoansUseCase,
	deleteUseCase *loan.DeleteLoanUseCase,
	disburseUseCase *loan.DisburseLoanUseCase,
	repayEarlyUseCase *loan.RepayEarlyUseCase,
) *LoanController {
	return &LoanController{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		deleteUseCase:     deleteUseCase,
		disburseUseCase:   disburseUseCase,
		repayEarlyUseCase: repayEarlyUseCase,
	}
}

// Create handles POST /loans requests.
func (c *LoanController) Create(ctx *gin.Context) {
	var req dto.CreateLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	lenderID, err := uuid.Parse(req.LenderID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid lender ID format"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid amount format"})
		return
	}

	issueDate, err := dto.ParseDate(req.IssueDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid issue_date format, expected YYYY-MM-DD"})
		return
	}

	input := loan.CreateLoanInput{
		LenderID:  lenderID,
		Amount:    amount,
		IssueDate: issueDate,
	}
	if req.InterestRate != nil {
		rate, err := decimal.NewFromString(*req.InterestRate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid interest_rate format"})
			return
		}
		input.InterestRate = &rate
	}
	if req.EndDate != nil {
		endDate, err := dto.ParseDate(*req.EndDate)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid end_date format, expected YYYY-MM-DD"})
			return
		}
		input.EndDate = &endDate
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLoanResponse(output.Loan))
}

// Get handles GET /loans/:id requests.
func (c *LoanController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	response := dto.LoanDetailResponse{
		Loan:    dto.ToLoanResponse(output.Loan),
		Balance: dto.ToLoanBalanceResponse(output.Balance),
	}
	if output.Lender != nil {
		lender := dto.ToLenderResponse(output.Lender)
		response.Lender = &lender
	}

	ctx.JSON(http.StatusOK, response)
}

// List handles GET /loans requests.
func (c *LoanController) List(ctx *gin.Context) {
	var status *entity.LoanStatus
	if statusStr := ctx.Query("status"); statusStr != "" {
		s := entity.LoanStatus(statusStr)
		status = &s
	}

	loans, err := c.listUseCase.Execute(ctx.Request.Context(), status)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve loans"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLoanListResponse(loans))
}

// Delete handles DELETE /loans/:id requests.
func (c *LoanController) Delete(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), id); err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Disburse handles POST /loans/:id/disburse requests.
func (c *LoanController) Disburse(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	var req dto.DisburseLoanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	output, err := c.disburseUseCase.Execute(ctx.Request.Context(), loan.DisburseLoanInput{
		LoanID: id,
		Date:   date,
	})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DisburseLoanResponse{
		Loan:        dto.ToLoanResponse(output.Loan),
		Transaction: dto.ToTransactionResponse(output.Transaction),
	})
}

// RepayEarly handles POST /loans/:id/repay-early requests.
func (c *LoanController) RepayEarly(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid loan ID format"})
		return
	}

	var req dto.RepayEarlyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid amount format"})
		return
	}

	date, err := dto.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	output, err := c.repayEarlyUseCase.Execute(ctx.Request.Context(), loan.RepayEarlyInput{
		LoanID: id,
		Amount: amount,
		Date:   date,
		Full:   req.Full,
	})
	if err != nil {
		handleLoanError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RepayEarlyResponse{
		Loan:              dto.ToLoanResponse(output.Loan),
		Transaction:       dto.ToTransactionResponse(output.Transaction),
		CancelledPayments: output.CancelledPayments,
	})
}

// handleLoanError maps loan and lender domain errors to HTTP responses.
func handleLoanError(ctx *gin.Context, err error) {
	var stateErr *domainerror.PaymentStateError

	switch {
	case errors.Is(err, domainerror.ErrLenderNotFound),
		errors.Is(err, domainerror.ErrLoanNotFound),
		errors.Is(err, domainerror.ErrLoanPaymentNotFound),
		errors.Is(err, domainerror.ErrCategoryNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrLenderNameRequired),
		errors.Is(err, domainerror.ErrInvalidLoanAmount),
		errors.Is(err, domainerror.ErrInvalidInterestRate),
		errors.Is(err, domainerror.ErrInvalidLoanDates),
		errors.Is(err, domainerror.ErrInvalidPaymentAmounts),
		errors.Is(err, domainerror.ErrInvalidExecutedAmount),
		errors.Is(err, domainerror.ErrMissingScheduledDate),
		errors.Is(err, domainerror.ErrInvalidRepaymentAmount):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrLenderHasActiveLoans),
		errors.Is(err, domainerror.ErrLoanNotActive),
		errors.Is(err, domainerror.ErrDisbursementAlreadyLinked),
		errors.As(err, &stateErr):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
