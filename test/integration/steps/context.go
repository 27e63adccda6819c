// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cashplan/backend/config"
	"github.com/cashplan/backend/internal/infra/cache"
	"github.com/cashplan/backend/internal/infra/db"
	"github.com/cashplan/backend/internal/infra/dependency"
	"github.com/cashplan/backend/internal/integration/persistence/model"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	server       *httptest.Server
	db           *gorm.DB
	redis        *miniredis.Miniredis
	response     *httpResponse
	requestHeaders map[string]string

	// vars holds values captured from responses, referenced in later
	// requests as {name}.
	vars map[string]string
}

type httpResponse struct {
	status int
	body   []byte
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions. Every scenario gets a
// fresh in-memory database and cache so scenarios cannot leak state into
// each other.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc, err := newTestContext()
		if err != nil {
			return ctx, err
		}
		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil {
			tc.close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
}

func newTestContext() (*TestContext, error) {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	err = gormDB.AutoMigrate(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.PlannedTransactionModel{},
		&model.OccurrenceRecordModel{},
		&model.PendingPaymentModel{},
		&model.LenderModel{},
		&model.LoanModel{},
		&model.LoanPaymentModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	if err := db.SeedSystemCategories(gormDB); err != nil {
		return nil, fmt.Errorf("failed to seed system categories: %w", err)
	}

	redisServer, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start miniredis: %w", err)
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	forecastCache := cache.NewForecastCacheWithClient(redisClient, 10*time.Minute)

	cfg := config.Load()
	injector := dependency.NewInjector(cfg, gormDB, forecastCache)
	engine := injector.Router.Setup("test")

	return &TestContext{
		server:         httptest.NewServer(engine),
		db:             gormDB,
		redis:          redisServer,
		requestHeaders: make(map[string]string),
		vars:           make(map[string]string),
	}, nil
}

func (tc *TestContext) close() {
	if tc.server != nil {
		tc.server.Close()
	}
	if tc.redis != nil {
		tc.redis.Close()
	}
}
