package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"receiptsync/internal/config"
	"receiptsync/internal/database"
	"receiptsync/internal/formatter"
	"receiptsync/internal/logger"
	"receiptsync/internal/receiptful"
	"receiptsync/internal/store"
	"receiptsync/internal/sync"
	"receiptsync/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	st := store.New(db.DB)

	// Wire the sync pipeline
	client := receiptful.NewClient(cfg.ReceiptfulURL, cfg.ReceiptfulAPIKey, logger)
	fmtr := formatter.New(st, cfg.FromEmail, logger)
	fmtr.Register(formatter.NewLicenseEnricher())
	engine := sync.NewEngine(st, fmtr, client, logger)

	// Event worker and retry scheduler
	w := worker.New(cfg, engine, logger)
	scheduler := worker.NewScheduler(engine, st, cfg.SyncInterval, cfg.SyncBatchSize, logger)

	logger.Info("Starting worker...")
	go w.Start()
	go scheduler.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	scheduler.Stop()
	w.Stop()
}
