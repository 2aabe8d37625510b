package main

import (
	"log"

	"receiptsync/internal/api"
	"receiptsync/internal/config"
	"receiptsync/internal/database"
	"receiptsync/internal/formatter"
	"receiptsync/internal/logger"
	"receiptsync/internal/receiptful"
	"receiptsync/internal/store"
	"receiptsync/internal/sync"
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

	// Initialize API server
	server := api.New(cfg, logger, st, engine, client)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
