package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers string
	KafkaTopic   string

	// API Configuration
	APIPort string
	APIHost string

	// Receiptful
	ReceiptfulAPIKey string
	ReceiptfulURL    string

	// Receipts are sent from this address
	FromEmail string

	// Sync
	SyncInterval  time.Duration
	SyncBatchSize int

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		DatabaseURL:      getEnv("DATABASE_URL", "sqlite://receiptsync.db"),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "commerce-events"),
		APIPort:          getEnv("API_PORT", "8080"),
		APIHost:          getEnv("API_HOST", "0.0.0.0"),
		ReceiptfulAPIKey: getEnv("RECEIPTFUL_API_KEY", ""),
		ReceiptfulURL:    getEnv("RECEIPTFUL_URL", "https://app.receiptful.com/api/v1"),
		FromEmail:        getEnv("FROM_EMAIL", "shop@localhost"),
		SyncInterval:     getEnvAsDuration("SYNC_INTERVAL", 15*time.Minute),
		SyncBatchSize:    getEnvAsInt("SYNC_BATCH_SIZE", 225),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
