// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/cashplan/backend/config"
	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/application/usecase/category"
	"github.com/cashplan/backend/internal/application/usecase/forecast"
	"github.com/cashplan/backend/internal/application/usecase/loan"
	"github.com/cashplan/backend/internal/application/usecase/loanpayment"
	"github.com/cashplan/backend/internal/application/usecase/pendingpayment"
	"github.com/cashplan/backend/internal/application/usecase/planned"
	"github.com/cashplan/backend/internal/application/usecase/transaction"
	"github.com/cashplan/backend/internal/infra/server/router"
	"github.com/cashplan/backend/internal/integration/entrypoint/controller"
	"github.com/cashplan/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The forecast cache is optional; a nil cache disables caching without
// affecting behavior.
func NewInjector(cfg *config.Config, db *gorm.DB, forecastCache adapter.ForecastCache) *Injector {
	// Create repositories
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	plannedRepo := persistence.NewPlannedTransactionRepository(db)
	pendingPaymentRepo := persistence.NewPendingPaymentRepository(db)
	lenderRepo := persistence.NewLenderRepository(db)
	loanRepo := persistence.NewLoanRepository(db)
	loanPaymentRepo := persistence.NewLoanPaymentRepository(db)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, forecastCache)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, forecastCache)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, forecastCache)

	// Create planned transaction use cases
	createPlannedUseCase := planned.NewCreatePlannedTransactionUseCase(plannedRepo, categoryRepo, forecastCache)
	listPlannedUseCase := planned.NewListPlannedTransactionsUseCase(plannedRepo)
	updatePlannedUseCase := planned.NewUpdatePlannedTransactionUseCase(plannedRepo, categoryRepo, forecastCache)
	deletePlannedUseCase := planned.NewDeletePlannedTransactionUseCase(plannedRepo, forecastCache)
	listOccurrencesUseCase := planned.NewListOccurrencesUseCase(plannedRepo)
	executeOccurrenceUseCase := planned.NewExecuteOccurrenceUseCase(plannedRepo, forecastCache)
	skipOccurrenceUseCase := planned.NewSkipOccurrenceUseCase(plannedRepo, forecastCache)
	unskipOccurrenceUseCase := planned.NewUnskipOccurrenceUseCase(plannedRepo, forecastCache)

	// Create pending payment use cases
	createPendingPaymentUseCase := pendingpayment.NewCreatePendingPaymentUseCase(pendingPaymentRepo, categoryRepo, forecastCache)
	listPendingPaymentsUseCase := pendingpayment.NewListPendingPaymentsUseCase(pendingPaymentRepo)
	executePendingPaymentUseCase := pendingpayment.NewExecutePendingPaymentUseCase(pendingPaymentRepo, forecastCache)
	cancelPendingPaymentUseCase := pendingpayment.NewCancelPendingPaymentUseCase(pendingPaymentRepo, forecastCache)

	// Create lender and loan use cases
	createLenderUseCase := loan.NewCreateLenderUseCase(lenderRepo)
	listLendersUseCase := loan.NewListLendersUseCase(lenderRepo)
	deleteLenderUseCase := loan.NewDeleteLenderUseCase(lenderRepo, loanRepo)
	createLoanUseCase := loan.NewCreateLoanUseCase(loanRepo, lenderRepo)
	getLoanUseCase := loan.NewGetLoanUseCase(loanRepo, loanPaymentRepo)
	listLoansUseCase := loan.NewListLoansUseCase(loanRepo)
	deleteLoanUseCase := loan.NewDeleteLoanUseCase(loanRepo, forecastCache)
	disburseLoanUseCase := loan.NewDisburseLoanUseCase(loanRepo, categoryRepo, forecastCache)
	repayEarlyUseCase := loan.NewRepayEarlyUseCase(loanRepo, transactionRepo, categoryRepo, forecastCache)

	// Create loan payment use cases
	createPaymentUseCase := loanpayment.NewCreatePaymentUseCase(loanRepo, loanPaymentRepo, forecastCache)
	listPaymentsUseCase := loanpayment.NewListPaymentsUseCase(loanPaymentRepo)
	executePaymentUseCase := loanpayment.NewExecutePaymentUseCase(loanPaymentRepo, categoryRepo, forecastCache)
	cancelPaymentUseCase := loanpayment.NewCancelPaymentUseCase(loanPaymentRepo, forecastCache)
	markOverdueUseCase := loanpayment.NewMarkOverdueUseCase(loanPaymentRepo, forecastCache)
	loanBalanceUseCase := loanpayment.NewLoanBalanceUseCase(loanRepo, loanPaymentRepo)
	loanStatisticsUseCase := loanpayment.NewLoanStatisticsUseCase(loanRepo, loanPaymentRepo)

	// Create forecast use cases
	forecastBalanceUseCase := forecast.NewForecastBalanceUseCase(
		transactionRepo,
		listOccurrencesUseCase,
		pendingPaymentRepo,
		loanPaymentRepo,
		forecastCache,
	)
	cashGapsUseCase := forecast.NewCashGapsUseCase(
		transactionRepo,
		listOccurrencesUseCase,
		pendingPaymentRepo,
		loanPaymentRepo,
	)

	// Create controllers
	var cacheHealthChecker func() bool
	if forecastCache != nil {
		cacheHealthChecker = func() bool {
			_, err := forecastCache.Get(context.Background(), time.Time{})
			return err == nil
		}
	}
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, cacheHealthChecker)
	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	plannedController := controller.NewPlannedTransactionController(
		createPlannedUseCase,
		listPlannedUseCase,
		updatePlannedUseCase,
		deletePlannedUseCase,
		listOccurrencesUseCase,
		executeOccurrenceUseCase,
		skipOccurrenceUseCase,
		unskipOccurrenceUseCase,
	)
	pendingPaymentController := controller.NewPendingPaymentController(
		createPendingPaymentUseCase,
		listPendingPaymentsUseCase,
		executePendingPaymentUseCase,
		cancelPendingPaymentUseCase,
	)
	lenderController := controller.NewLenderController(
		createLenderUseCase,
		listLendersUseCase,
		deleteLenderUseCase,
	)
	loanController := controller.NewLoanController(
		createLoanUseCase,
		getLoanUseCase,
		listLoansUseCase,
		deleteLoanUseCase,
		disburseLoanUseCase,
		repayEarlyUseCase,
	)
	loanPaymentController := controller.NewLoanPaymentController(
		createPaymentUseCase,
		listPaymentsUseCase,
		executePaymentUseCase,
		cancelPaymentUseCase,
		markOverdueUseCase,
		loanBalanceUseCase,
		loanStatisticsUseCase,
	)
	forecastController := controller.NewForecastController(
		forecastBalanceUseCase,
		cashGapsUseCase,
	)

	r := router.NewRouter(
		healthController,
		categoryController,
		transactionController,
		plannedController,
		pendingPaymentController,
		lenderController,
		loanController,
		loanPaymentController,
		forecastController,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
