package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"receiptsync/internal/config"
	"receiptsync/internal/formatter"
	"receiptsync/internal/logger"
	"receiptsync/internal/sync"

	"github.com/segmentio/kafka-go"
)

// Event is a commerce notification: a purchase completed or a product
// changed. The worker reacts with an immediate push; failures land in
// the retry queue, never back on the topic.
type Event struct {
	Type      string    `json:"type"`
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventOrderCompleted = "order.completed"
	EventProductUpdated = "product.updated"
	EventProductTrashed = "product.trashed"
)

type Worker struct {
	logger *logger.Logger
	reader *kafka.Reader
	engine *sync.Engine
}

func New(cfg *config.Config, engine *sync.Engine, logger *logger.Logger) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "receiptsync-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		logger: logger,
		reader: reader,
		engine: engine,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for commerce events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		var event Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		w.process(event)
	}
}

func (w *Worker) process(event Event) {
	var err error

	switch event.Type {
	case EventOrderCompleted:
		_, err = w.engine.PushOrder(event.EntityID)
	case EventProductUpdated:
		_, err = w.engine.PushProduct(event.EntityID)
	case EventProductTrashed:
		_, err = w.engine.DeleteProduct(event.EntityID)
	default:
		w.logger.Debug("Ignoring event type %q", event.Type)
		return
	}

	if errors.Is(err, formatter.ErrSkip) {
		w.logger.Debug("Skipped %s for missing entity %s", event.Type, event.EntityID)
		return
	}
	if err != nil {
		w.logger.Error("Failed to process %s for %s: %v", event.Type, event.EntityID, err)
		return
	}

	w.logger.Debug("Event %s processed for %s", event.Type, event.EntityID)
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
