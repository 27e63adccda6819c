// Package main is the entry point for the CashPlan API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cashplan/backend/config"
	"github.com/cashplan/backend/internal/application/adapter"
	"github.com/cashplan/backend/internal/infra/cache"
	"github.com/cashplan/backend/internal/infra/db"
	"github.com/cashplan/backend/internal/infra/dependency"
	"github.com/cashplan/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting CashPlan API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	// Run database migrations
	if err := database.AutoMigrate(
		&model.CategoryModel{},
		&model.TransactionModel{},
		&model.PlannedTransactionModel{},
		&model.OccurrenceRecordModel{},
		&model.PendingPaymentModel{},
		&model.LenderModel{},
		&model.LoanModel{},
		&model.LoanPaymentModel{},
	); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	if err := db.SeedSystemCategories(database.DB()); err != nil {
		slog.Error("Failed to seed system categories", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	// Initialize the forecast cache. Redis being down only disables caching.
	var forecastCache adapter.ForecastCache
	if cfg.Redis.Enabled {
		forecastCache, err = cache.NewForecastCache(&cfg.Redis, cfg.Forecast.CacheTTL)
		if err != nil {
			slog.Warn("Redis connection failed, running without forecast cache", "error", err)
			forecastCache = nil
		}
	}

	// Wire dependencies and setup router
	injector := dependency.NewInjector(cfg, database.DB(), forecastCache)
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}
