package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "tahseel-backend/internal/api/http"
	"tahseel-backend/internal/config"
	"tahseel-backend/internal/logger"
	"tahseel-backend/internal/repository/postgres"
	"tahseel-backend/internal/security"
	"tahseel-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Tahseel Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	notebookSvc := service.NewNotebookService(
		store.NotebookRepository,
		store.ReceiptRepository,
		store.CollectorRepository,
		time.Duration(cfg.Sync.IncrementalWindowHours)*time.Hour,
	)
	reportSvc := service.NewReportService(
		store.ReceiptRepository,
		store.DepositRepository,
		store.CollectorRepository,
		store.FundRepository,
		store.NotebookRepository,
	)
	receiptSvc := service.NewReceiptService(
		store.ReceiptRepository,
		store.CollectorRepository,
		store.SubscriberRepository,
	)
	collectorSvc := service.NewCollectorService(store.CollectorRepository)
	fundSvc := service.NewFundService(store.FundRepository)
	depositSvc := service.NewDepositService(store.DepositRepository, store.CollectorRepository)
	subscriberSvc := service.NewSubscriberService(store.SubscriberRepository, store.ReceiptRepository)
	dashboardSvc := service.NewDashboardService(
		store.ReceiptRepository,
		store.DepositRepository,
		store.CollectorRepository,
		store.NotebookRepository,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Auth:        authSvc,
		Notebooks:   notebookSvc,
		Reports:     reportSvc,
		Receipts:    receiptSvc,
		Collectors:  collectorSvc,
		Funds:       fundSvc,
		Deposits:    depositSvc,
		Subscribers: subscriberSvc,
		Dashboard:   dashboardSvc,
	}, tokenManager)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
