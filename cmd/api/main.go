package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/sgavril/condoflow-api/internal/config"
	"github.com/sgavril/condoflow-api/internal/database"
	"github.com/sgavril/condoflow-api/internal/handlers"
	"github.com/sgavril/condoflow-api/internal/jobs"
	"github.com/sgavril/condoflow-api/internal/middleware"
	"github.com/sgavril/condoflow-api/internal/repository"
	"github.com/sgavril/condoflow-api/internal/services"
	"github.com/sgavril/condoflow-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs, cfg)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, worker)

	// Setup router
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// scheduleJobs wires the recurring reconciliation sweep. Drift between
// a cached balance and its ledger replay is a data-integrity fault;
// the sweep reports it loudly and never repairs the cache.
func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	if cfg.ReconcileIntervalMinutes <= 0 {
		logger.Info("Reconciliation sweep disabled")
		return
	}

	interval := time.Duration(cfg.ReconcileIntervalMinutes) * time.Minute
	worker.ScheduleEveryImmediate(interval, func(ctx context.Context) error {
		drifted, err := svcs.Balance.ReconcileAll(ctx)
		if err != nil {
			return fmt.Errorf("reconciliation sweep failed: %w", err)
		}
		for _, result := range drifted {
			logger.Error("balance drift detected",
				"apartment_id", result.ApartmentID,
				"cached", result.CachedBalance,
				"ledger", result.LedgerBalance,
				"drift", result.Drift)
			if cfg.SentryDSN != "" {
				sentry.CaptureMessage(fmt.Sprintf(
					"balance drift: apartment %d cached %.2f ledger %.2f",
					result.ApartmentID, result.CachedBalance, result.LedgerBalance))
			}
		}
		if len(drifted) > 0 {
			return fmt.Errorf("%d apartments drifted: %w", len(drifted), services.ErrBalanceDrift)
		}
		return nil
	})
	logger.Info("Scheduled reconciliation sweep", "interval", interval)
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)
		v1.GET("/jobs/stats", h.Job.Stats)

		// Buildings and apartments
		v1.POST("/buildings", h.Building.Create)
		v1.GET("/buildings", h.Building.Index)
		v1.GET("/buildings/:building_id", h.Building.Show)
		v1.POST("/buildings/:building_id/apartments", h.Building.AddApartment)
		v1.PUT("/buildings/:building_id/mills", h.Building.ReallocateMills)
		v1.GET("/buildings/:building_id/summary", h.Building.Summary)

		// Expenses and distribution
		v1.POST("/buildings/:building_id/expenses", h.Expense.Create)
		v1.GET("/buildings/:building_id/expenses", h.Expense.Index)
		v1.GET("/expenses/:expense_id/shares", h.Expense.Shares)
		v1.POST("/expenses/:expense_id/distribute", h.Expense.Distribute)
		v1.POST("/expenses/:expense_id/distribute_heating", h.Expense.DistributeHeating)
		v1.POST("/buildings/:building_id/meter_readings", h.Expense.RecordMeterReading)

		// Payments
		v1.POST("/apartments/:apartment_id/payments", h.Payment.Create)
		v1.GET("/apartments/:apartment_id/payments", h.Payment.Index)

		// Ledger and balances
		v1.GET("/apartments/:apartment_id/ledger", h.Balance.Ledger)
		v1.GET("/apartments/:apartment_id/balance", h.Balance.Balance)
		v1.GET("/apartments/:apartment_id/breakdown", h.Balance.Breakdown)
		v1.GET("/apartments/:apartment_id/reconcile", h.Balance.Reconcile)
		v1.POST("/apartments/:apartment_id/adjustments", h.Balance.CreateAdjustment)

		// Monthly balances
		v1.GET("/buildings/:building_id/monthly_balances", h.MonthlyBalance.Index)
		v1.GET("/buildings/:building_id/monthly_balances/:year/:month", h.MonthlyBalance.Show)
		v1.POST("/buildings/:building_id/monthly_balances/:year/:month/close", h.MonthlyBalance.Close)

		// Reserve fund
		v1.POST("/buildings/:building_id/reserve_fund", h.ReserveFund.Configure)
		v1.POST("/buildings/:building_id/reserve_fund/collect", h.ReserveFund.Collect)
		v1.GET("/buildings/:building_id/reserve_fund/progress", h.ReserveFund.Progress)
	}

	return router
}
