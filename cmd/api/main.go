package main

import (
	"context"
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

	"github.com/rvmoura/pagamentos-api/internal/config"
	"github.com/rvmoura/pagamentos-api/internal/database"
	"github.com/rvmoura/pagamentos-api/internal/handlers"
	"github.com/rvmoura/pagamentos-api/internal/jobs"
	"github.com/rvmoura/pagamentos-api/internal/middleware"
	"github.com/rvmoura/pagamentos-api/internal/repository"
	"github.com/rvmoura/pagamentos-api/internal/services"
	"github.com/rvmoura/pagamentos-api/internal/storage"
	"github.com/rvmoura/pagamentos-api/pkg/logger"

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
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize storage for raw CSV uploads
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage")

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, store, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs, store, cfg.UploadMaxBytes)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
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

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Shutdown background worker
	worker.Shutdown()
	logger.Info("Background worker stopped")

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
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
		// Health check
		v1.GET("/health", h.Health.Index)

		// Creditor registry (append-only: deletes always refused)
		creditors := v1.Group("/creditors")
		{
			creditors.GET("", h.Creditor.Index)
			creditors.POST("", h.Creditor.Create)
			creditors.GET("/:doc", h.Creditor.Show)
			creditors.PUT("/:doc", h.Creditor.Update)
			creditors.DELETE("/:doc", h.Creditor.Delete)
		}

		// Product and service catalog
		catalog := v1.Group("/product_services")
		{
			catalog.GET("", h.Catalog.Index)
			catalog.POST("", h.Catalog.Create)
			catalog.GET("/:id", h.Catalog.Show)
			catalog.PUT("/:id", h.Catalog.Update)
			catalog.DELETE("/:id", h.Catalog.Delete)
		}

		// Contracts, amendments and balances
		contracts := v1.Group("/contracts")
		{
			contracts.GET("", h.Contract.Index)
			contracts.POST("", h.Contract.Create)
			contracts.GET("/:number", h.Contract.Show)
			contracts.DELETE("/:number", h.Contract.Delete)
			contracts.GET("/:number/balance", h.Contract.Balance)
			contracts.POST("/:number/amendments", h.Contract.CreateAmendment)
			contracts.GET("/:number/payments", h.Payment.IndexByContract)
		}

		// Payments
		payments := v1.Group("/payments")
		{
			payments.GET("", h.Payment.Index)
			payments.POST("", h.Payment.Create)
			payments.GET("/:payment_id", h.Payment.Show)
			payments.DELETE("/:payment_id", h.Payment.Delete)
		}

		// CSV import batches
		imports := v1.Group("/imports")
		{
			imports.GET("", h.Import.Index)
			imports.POST("", h.Import.Create)
			imports.GET("/kinds", h.Import.Kinds)
			imports.GET("/:guid", h.Import.Show)
		}

		// Reports
		v1.GET("/reports/payments", h.Report.Payments)

		// Audit trail
		v1.GET("/audits", h.Audit.Index)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Fail import batches orphaned by a restart mid-processing
	worker.ScheduleEvery(10*time.Minute, func(ctx context.Context) error {
		return svcs.Import.SweepStale(ctx, 30*time.Minute)
	})

	logger.Info("Scheduled recurring jobs")
}
