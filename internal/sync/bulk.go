package sync

import (
	"errors"
	"fmt"
	"time"

	"receiptsync/internal/formatter"
	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"
)

// SyncProductBatch pushes one page of never-synced products in a single
// bulk call. An empty selection marks the initial product sync as done.
// Transient failures leave all markers untouched so the same page is
// re-selected on the next run.
func (e *Engine) SyncProductBatch(size int) error {
	ids, err := e.store.UnsyncedProducts(size)
	if err != nil {
		return fmt.Errorf("failed to select unsynced products: %w", err)
	}

	if len(ids) == 0 {
		e.logger.Info("Initial product sync complete")
		return e.store.SetFlag(models.OptionProductSyncDone)
	}

	var payload []*receiptful.ProductData
	var included []string
	for _, id := range ids {
		data, err := e.formatter.Product(id)
		if err != nil {
			if errors.Is(err, formatter.ErrSkip) {
				// Trashed since selection; stop re-selecting it.
				e.store.MarkProductSkipped(id)
				continue
			}
			return err
		}
		payload = append(payload, data)
		included = append(included, id)
	}

	if len(payload) == 0 {
		return nil
	}

	result := e.client.UpdateProducts(payload)

	switch result.Outcome {
	case receiptful.Success:
		resp, err := result.DecodeBulk()
		if err != nil {
			return fmt.Errorf("failed to decode bulk product response: %w", err)
		}

		failed := make(map[string]bool)
		for _, bulkErr := range resp.Errors {
			failed[bulkErr.Error.ProductID] = true
		}

		now := time.Now()
		for _, id := range included {
			if failed[id] {
				e.store.MarkProductSkipped(id)
			} else {
				e.store.MarkProductSynced(id, now)
			}
		}

	case receiptful.PermanentFailure:
		// The server will never accept this batch; skip it instead of
		// retrying forever.
		for _, id := range included {
			e.store.MarkProductSkipped(id)
		}

	default:
		e.logger.Warn("Bulk product sync deferred: %s (code %d)", result.Outcome, result.Code)
	}

	return nil
}

// SyncReceiptBatch uploads one page of historical orders that never
// reached the remote service. The backfill improves recommendation
// quality for future receipts.
func (e *Engine) SyncReceiptBatch(size int) error {
	ids, err := e.store.UnsyncedOrders(size)
	if err != nil {
		return fmt.Errorf("failed to select unsynced orders: %w", err)
	}

	if len(ids) == 0 {
		e.logger.Info("Initial receipt sync complete")
		return e.store.SetFlag(models.OptionReceiptSyncDone)
	}

	var payload []*receiptful.ReceiptData
	var included []string
	references := make(map[string]string)
	for _, id := range ids {
		data, err := e.formatter.Receipt(id)
		if err != nil {
			if errors.Is(err, formatter.ErrSkip) {
				e.store.MarkOrderSkipped(id)
				continue
			}
			return err
		}
		payload = append(payload, data)
		included = append(included, id)
		references[id] = data.Reference
	}

	if len(payload) == 0 {
		return nil
	}

	result := e.client.UploadReceipts(payload)

	switch result.Outcome {
	case receiptful.Success:
		resp, err := result.DecodeBulk()
		if err != nil {
			return fmt.Errorf("failed to decode bulk receipt response: %w", err)
		}

		// Failures come back keyed by receipt reference.
		failed := make(map[string]bool)
		for _, bulkErr := range resp.Errors {
			failed[bulkErr.Error.Reference] = true
		}

		now := time.Now()
		for _, id := range included {
			if failed[id] || failed[references[id]] {
				e.store.MarkOrderSkipped(id)
			} else {
				e.store.MarkOrderSynced(id, now)
			}
		}

	case receiptful.PermanentFailure:
		for _, id := range included {
			e.store.MarkOrderSkipped(id)
		}

	default:
		e.logger.Warn("Bulk receipt sync deferred: %s (code %d)", result.Outcome, result.Code)
	}

	return nil
}
