// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/cashplan/backend/internal/integration/entrypoint/controller"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	categoryController       *controller.CategoryController
	transactionController    *controller.TransactionController
	plannedController        *controller.PlannedTransactionController
	pendingPaymentController *controller.PendingPaymentController
	lenderController         *controller.LenderController
	loanController           *controller.LoanController
	loanPaymentController    *controller.LoanPaymentController
	forecastController       *controller.ForecastController
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	plannedController *controller.PlannedTransactionController,
	pendingPaymentController *controller.PendingPaymentController,
	lenderController *controller.LenderController,
	loanController *controller.LoanController,
	loanPaymentController *controller.LoanPaymentController,
	forecastController *controller.ForecastController,
) *Router {
	return &Router{
		healthController:         healthController,
		categoryController:       categoryController,
		transactionController:    transactionController,
		plannedController:        plannedController,
		pendingPaymentController: pendingPaymentController,
		lenderController:         lenderController,
		loanController:           loanController,
		loanPaymentController:    loanPaymentController,
		forecastController:       forecastController,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.categoryController != nil {
			categories := v1.Group("/categories")
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
			}
		}

		if r.plannedController != nil {
			planned := v1.Group("/planned")
			{
				planned.GET("", r.plannedController.List)
				planned.POST("", r.plannedController.Create)
				planned.GET("/occurrences", r.plannedController.ListOccurrences)
				planned.PATCH("/:id", r.plannedController.Update)
				planned.DELETE("/:id", r.plannedController.Delete)
				planned.POST("/:id/occurrences/execute", r.plannedController.ExecuteOccurrence)
				planned.POST("/:id/occurrences/skip", r.plannedController.SkipOccurrence)
				planned.POST("/:id/occurrences/unskip", r.plannedController.UnskipOccurrence)
			}
		}

		if r.pendingPaymentController != nil {
			pendingPayments := v1.Group("/pending-payments")
			{
				pendingPayments.GET("", r.pendingPaymentController.List)
				pendingPayments.POST("", r.pendingPaymentController.Create)
				pendingPayments.POST("/:id/execute", r.pendingPaymentController.Execute)
				pendingPayments.POST("/:id/cancel", r.pendingPaymentController.Cancel)
			}
		}

		if r.lenderController != nil {
			lenders := v1.Group("/lenders")
			{
				lenders.GET("", r.lenderController.List)
				lenders.POST("", r.lenderController.Create)
				lenders.DELETE("/:id", r.lenderController.Delete)
			}
		}

		if r.loanController != nil {
			loans := v1.Group("/loans")
			{
				loans.GET("", r.loanController.List)
				loans.POST("", r.loanController.Create)
				loans.GET("/:id", r.loanController.Get)
				loans.DELETE("/:id", r.loanController.Delete)
				loans.POST("/:id/disburse", r.loanController.Disburse)
				loans.POST("/:id/repay-early", r.loanController.RepayEarly)

				if r.loanPaymentController != nil {
					loans.GET("/:id/payments", r.loanPaymentController.ListByLoan)
					loans.GET("/:id/balance", r.loanPaymentController.Balance)
					loans.GET("/:id/statistics", r.loanPaymentController.Statistics)
				}
			}
		}

		if r.loanPaymentController != nil {
			loanPayments := v1.Group("/loan-payments")
			{
				loanPayments.GET("", r.loanPaymentController.List)
				loanPayments.POST("", r.loanPaymentController.Create)
				loanPayments.POST("/mark-overdue", r.loanPaymentController.MarkOverdue)
				loanPayments.POST("/:id/execute", r.loanPaymentController.Execute)
				loanPayments.POST("/:id/cancel", r.loanPaymentController.Cancel)
			}
		}

		if r.forecastController != nil {
			forecastGroup := v1.Group("/forecast")
			{
				forecastGroup.GET("/balance", r.forecastController.Balance)
				forecastGroup.GET("/cash-gaps", r.forecastController.CashGaps)
			}
		}
	}
}
