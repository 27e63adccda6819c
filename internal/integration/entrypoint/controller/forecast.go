// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cashplan/backend/internal/application/usecase/forecast"
	domainerror "github.com/cashplan/backend/internal/domain/error"
	"github.com/cashplan/backend/internal/integration/entrypoint/dto"
)

// ForecastController handles forecast endpoints.
type ForecastController struct {
	balanceUseCase  *forecast.ForecastBalanceUseCase
	cashGapsUseCase *forecast.CashGapsUseCase
}

// NewForecastController creates a new forecast controller instance.
func NewForecastController(
	balanceUseCase *forecast.ForecastBalanceUseCase,
	cashGapsUseCase *forecast.CashGapsUseCase,
) *ForecastController {
	return &ForecastController{
		balanceUseCase:  balanceUseCase,
		cashGapsUseCase: cashGapsUseCase,
	}
}

// Balance handles GET /forecast/balance?date= requests.
func (c *ForecastController) Balance(ctx *gin.Context) {
	date, err := dto.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	output, err := c.balanceUseCase.Execute(ctx.Request.Context(), forecast.ForecastBalanceInput{AsOf: date})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ForecastBalanceResponse{
		Date:    dto.FormatDate(output.AsOf),
		Balance: output.Balance.String(),
	})
}

// CashGaps handles GET /forecast/cash-gaps?start=&end= requests.
func (c *ForecastController) CashGaps(ctx *gin.Context) {
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

	output, err := c.cashGapsUseCase.Execute(ctx.Request.Context(), forecast.CashGapsInput{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		c.handleForecastError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCashGapsResponse(output.Gaps))
}

// handleForecastError maps forecast domain errors to HTTP responses. An
// unavailable data source is a server-side failure, never a silent zero.
func (c *ForecastController) handleForecastError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domainerror.ErrInvalidForecastRange):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainerror.ErrDataUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
	}
}
