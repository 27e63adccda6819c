// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/cashplan/backend/internal/application/usecase/loanpayment"
	"github.com/cashplan/backend/internal/domain/entity"
)

// CreateLenderRequest represents the request body for lender creation.
type CreateLenderRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	ContactInfo string `json:"contact_info,omitempty" binding:"omitempty,max=255"`
}

// LenderResponse represents a lender in API responses.
type LenderResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LenderListResponse represents the response for listing lenders.
type LenderListResponse struct {
	Lenders []LenderResponse `json:"lenders"`
}

// ToLenderResponse converts a domain Lender entity to its response DTO.
func ToLenderResponse(lender *entity.Lender) LenderResponse {
	return LenderResponse{
		ID:          lender.ID.String(),
		Name:        lender.Name,
		ContactInfo: lender.ContactInfo,
		CreatedAt:   lender.CreatedAt,
		UpdatedAt:   lender.UpdatedAt,
	}
}

// ToLenderListResponse converts domain lenders to a list response.
func ToLenderListResponse(lenders []*entity.Lender) LenderListResponse {
	responses := make([]LenderResponse, len(lenders))
	for i, l := range lenders {
		responses[i] = ToLenderResponse(l)
	}
	return LenderListResponse{Lenders: responses}
}

// CreateLoanRequest represents the request body for loan creation.
type CreateLoanRequest struct {
	LenderID     string  `json:"lender_id" binding:"required,uuid"`
	Amount       string  `json:"amount" binding:"required"`
	InterestRate *string `json:"interest_rate,omitempty"`
	IssueDate    string  `json:"issue_date" binding:"required"`
	EndDate      *string `json:"end_date,omitempty"`
}

// LoanResponse represents a loan in API responses.
type LoanResponse struct {
	ID                        string    `json:"id"`
	LenderID                  string    `json:"lender_id"`
	Amount                    string    `json:"amount"`
	InterestRate              *string   `json:"interest_rate,omitempty"`
	IssueDate                 string    `json:"issue_date"`
	EndDate                   *string   `json:"end_date,omitempty"`
	Status                    string    `json:"status"`
	DisbursementTransactionID *string   `json:"disbursement_transaction_id,omitempty"`
	CreatedAt                 time.Time `json:"created_at"`
	UpdatedAt                 time.Time `json:"updated_at"`
}

// LoanDetailResponse represents a loan with lender and balance.
type LoanDetailResponse struct {
	Loan    LoanResponse        `json:"loan"`
	Lender  *LenderResponse     `json:"lender,omitempty"`
	Balance LoanBalanceResponse `json:"balance"`
}

// LoanListResponse represents the response for listing loans.
type LoanListResponse struct {
	Loans []LoanResponse `json:"loans"`
}

// LoanBalanceResponse represents an outstanding loan balance.
type LoanBalanceResponse struct {
	PrincipalBalance string `json:"principal_balance"`
	AccruedInterest  string `json:"accrued_interest"`
	TotalBalance     string `json:"total_balance"`
}

// LoanStatisticsResponse represents loan interest statistics.
type LoanStatisticsResponse struct {
	TotalInterest      string `json:"total_interest"`
	PaidInterest       string `json:"paid_interest"`
	OverpaymentPercent string `json:"overpayment_percent"`
}

// DisburseLoanRequest represents the request body for loan disbursement.
type DisburseLoanRequest struct {
	Date string `json:"date" binding:"required"`
}

// DisburseLoanResponse represents the result of a loan disbursement.
type DisburseLoanResponse struct {
	Loan        LoanResponse        `json:"loan"`
	Transaction TransactionResponse `json:"transaction"`
}

// RepayEarlyRequest represents the request body for early loan repayment.
type RepayEarlyRequest struct {
	Amount string `json:"amount" binding:"required"`
	Date   string `json:"date" binding:"required"`
	Full   bool   `json:"full"`
}

// RepayEarlyResponse represents the result of an early loan repayment.
type RepayEarlyResponse struct {
	Loan              LoanResponse        `json:"loan"`
	Transaction       TransactionResponse `json:"transaction"`
	CancelledPayments int64               `json:"cancelled_payments"`
}

// ToLoanResponse converts a domain Loan entity to its response DTO.
func ToLoanResponse(loan *entity.Loan) LoanResponse {
	response := LoanResponse{
		ID:        loan.ID.String(),
		LenderID:  loan.LenderID.String(),
		Amount:    loan.Amount.String(),
		IssueDate: FormatDate(loan.IssueDate),
		EndDate:   FormatDatePtr(loan.EndDate),
		Status:    string(loan.Status),
		CreatedAt: loan.CreatedAt,
		UpdatedAt: loan.UpdatedAt,
	}
	if loan.InterestRate != nil {
		rate := loan.InterestRate.String()
		response.InterestRate = &rate
	}
	if loan.DisbursementTransactionID != nil {
		id := loan.DisbursementTransactionID.String()
		response.DisbursementTransactionID = &id
	}
	return response
}

// ToLoanListResponse converts domain loans to a list response.
func ToLoanListResponse(loans []*entity.Loan) LoanListResponse {
	responses := make([]LoanResponse, len(loans))
	for i, l := range loans {
		responses[i] = ToLoanResponse(l)
	}
	return LoanListResponse{Loans: responses}
}

// ToLoanBalanceResponse converts a domain LoanBalance to its response DTO.
func ToLoanBalanceResponse(balance *entity.LoanBalance) LoanBalanceResponse {
	return LoanBalanceResponse{
		PrincipalBalance: balance.PrincipalBalance.String(),
		AccruedInterest:  balance.AccruedInterest.String(),
		TotalBalance:     balance.TotalBalance.String(),
	}
}

// CreateLoanPaymentRequest represents the request body for scheduling a loan
// payment.
type CreateLoanPaymentRequest struct {
	LoanID          string  `json:"loan_id" binding:"required,uuid"`
	ScheduledDate   string  `json:"scheduled_date" binding:"required"`
	PrincipalAmount string  `json:"principal_amount" binding:"required"`
	InterestAmount  string  `json:"interest_amount" binding:"required"`
	TotalAmount     *string `json:"total_amount,omitempty"`
}

// ExecuteLoanPaymentRequest represents the request body for executing a loan
// payment.
type ExecuteLoanPaymentRequest struct {
	ExecutedAmount string `json:"executed_amount" binding:"required"`
	ExecutedDate   string `json:"executed_date" binding:"required"`
}

// MarkOverdueRequest represents the request body for the overdue sweep. The
// cutoff defaults to today when absent.
type MarkOverdueRequest struct {
	AsOf *string `json:"as_of,omitempty"`
}

// MarkOverdueResponse represents the result of the overdue sweep.
type MarkOverdueResponse struct {
	TransitionedCount int64 `json:"transitioned_count"`
}

// LoanPaymentResponse represents a loan payment in API responses.
type LoanPaymentResponse struct {
	ID              string    `json:"id"`
	LoanID          string    `json:"loan_id"`
	ScheduledDate   string    `json:"scheduled_date"`
	PrincipalAmount string    `json:"principal_amount"`
	InterestAmount  string    `json:"interest_amount"`
	TotalAmount     string    `json:"total_amount"`
	Status          string    `json:"status"`
	ExecutedDate    *string   `json:"executed_date,omitempty"`
	ExecutedAmount  *string   `json:"executed_amount,omitempty"`
	TransactionID   *string   `json:"transaction_id,omitempty"`
	OverdueDays     int       `json:"overdue_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LoanPaymentListResponse represents the response for listing loan payments.
type LoanPaymentListResponse struct {
	Payments []LoanPaymentResponse `json:"payments"`
}

// ToLoanPaymentResponse converts a use case payment output to its response DTO.
func ToLoanPaymentResponse(payment *loanpayment.LoanPaymentOutput) LoanPaymentResponse {
	response := LoanPaymentResponse{
		ID:              payment.ID.String(),
		LoanID:          payment.LoanID.String(),
		ScheduledDate:   FormatDate(payment.ScheduledDate),
		PrincipalAmount: payment.PrincipalAmount.String(),
		InterestAmount:  payment.InterestAmount.String(),
		TotalAmount:     payment.TotalAmount.String(),
		Status:          string(payment.Status),
		ExecutedDate:    FormatDatePtr(payment.ExecutedDate),
		OverdueDays:     payment.OverdueDays,
		CreatedAt:       payment.CreatedAt,
		UpdatedAt:       payment.UpdatedAt,
	}
	if payment.ExecutedAmount != nil {
		amount := payment.ExecutedAmount.String()
		response.ExecutedAmount = &amount
	}
	if payment.TransactionID != nil {
		id := payment.TransactionID.String()
		response.TransactionID = &id
	}
	return response
}

// ToLoanPaymentListResponse converts use case payment outputs to a list
// response.
func ToLoanPaymentListResponse(payments []*loanpayment.LoanPaymentOutput) LoanPaymentListResponse {
	responses := make([]LoanPaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToLoanPaymentResponse(p)
	}
	return LoanPaymentListResponse{Payments: responses}
}
