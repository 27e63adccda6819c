// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	ForecastCache string `json:"forecast_cache"`
	Timestamp     string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil
// cacheHealthChecker means the engine runs without the forecast cache.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// It reports the database and the forecast cache alongside the overall
// status. A missing cache only degrades forecasts to direct computation, so
// the database alone drives the overall status.
func (h *HealthController) Check(c *gin.Context) {
	status := "ok"
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	} else {
		status = "degraded"
	}

	cacheStatus := "disabled"
	if h.cacheHealthChecker != nil {
		cacheStatus = "disconnected"
		if h.cacheHealthChecker() {
			cacheStatus = "connected"
		}
	}

	response := HealthResponse{
		Status:        status,
		Database:      dbStatus,
		ForecastCache: cacheStatus,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
