// Package dto defines data transfer objects for API requests and responses.
package dto

import "time"

// ForecastBalanceResponse represents a projected balance for one date.
type ForecastBalanceResponse struct {
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

// CashGapsResponse represents the dates in a range on which the projected
// balance is negative.
type CashGapsResponse struct {
	Gaps []string `json:"gaps"`
}

// ToCashGapsResponse converts gap dates to their response DTO.
func ToCashGapsResponse(gaps []time.Time) CashGapsResponse {
	dates := make([]string, len(gaps))
	for i, g := range gaps {
		dates[i] = FormatDate(g)
	}
	return CashGapsResponse{Gaps: dates}
}
