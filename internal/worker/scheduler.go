package worker

import (
	"time"

	"receiptsync/internal/logger"
	"receiptsync/internal/models"
	"receiptsync/internal/sync"
)

// Scheduler fires the queue drain on a fixed interval and, until the
// completion flags are set, the initial bulk sync for both entity
// types. There is no backoff: the retry cadence is this interval.
type Scheduler struct {
	engine    *sync.Engine
	store     sync.Store
	interval  time.Duration
	batchSize int
	logger    *logger.Logger
	quit      chan struct{}
}

func NewScheduler(engine *sync.Engine, store sync.Store, interval time.Duration, batchSize int, logger *logger.Logger) *Scheduler {
	return &Scheduler{
		engine:    engine,
		store:     store,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
		quit:      make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("Scheduler started, interval %s", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// One pass at startup so a restart doesn't wait a full interval.
	s.tick()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.quit:
			s.logger.Info("Scheduler stopped")
			return
		}
	}
}

func (s *Scheduler) tick() {
	s.engine.DrainQueue()

	if done, err := s.store.Flag(models.OptionProductSyncDone); err == nil && !done {
		if err := s.engine.SyncProductBatch(s.batchSize); err != nil {
			s.logger.Error("Initial product sync failed: %v", err)
		}
	}

	if done, err := s.store.Flag(models.OptionReceiptSyncDone); err == nil && !done {
		if err := s.engine.SyncReceiptBatch(s.batchSize); err != nil {
			s.logger.Error("Initial receipt sync failed: %v", err)
		}
	}
}

func (s *Scheduler) Stop() {
	close(s.quit)
}
