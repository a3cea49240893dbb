package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/dongle-dev/dongle_backend/internal/adapters/database/pgsql"
	"github.com/dongle-dev/dongle_backend/internal/core/services"
	"github.com/dongle-dev/dongle_backend/internal/handlers"
	"github.com/dongle-dev/dongle_backend/internal/middleware"
	"github.com/dongle-dev/dongle_backend/internal/platform/config"
	"github.com/dongle-dev/dongle_backend/internal/platform/ratesync"
	"github.com/dongle-dev/dongle_backend/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portsrepo "github.com/dongle-dev/dongle_backend/internal/core/ports/repositories"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Dongle Backend API
// @version 1.0
// @description Expense tracking and cost sharing for Korean exchange students.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories and services
	repos := portsrepo.RepositoryProvider{
		RateRepo:     pgsql.NewRateRepository(dbPool),
		LedgerRepo:   pgsql.NewLedgerRepository(dbPool),
		BudgetRepo:   pgsql.NewBudgetRepository(dbPool),
		SnapshotRepo: pgsql.NewSnapshotRepository(dbPool),
		FeedRepo:     pgsql.NewFeedRepository(dbPool),
		ProfileRepo:  pgsql.NewProfileRepository(dbPool),
	}
	serviceContainer := services.NewServiceContainer(repos)

	// Background rate refresher
	refresher := ratesync.NewRefresher(
		ratesync.NewClient(cfg.RateAPIURL, logger),
		serviceContainer.Rate,
		cfg.RateRefreshInterval,
		logger,
	)
	if err := refresher.Start(); err != nil {
		logger.Error("Failed to start rate refresher", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer refresher.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a short-lived
// database/sql connection compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
