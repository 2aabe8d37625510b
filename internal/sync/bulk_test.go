package sync

import (
	"testing"

	"receiptsync/internal/logger"
	"receiptsync/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncProductBatchEmptySetsFlag(t *testing.T) {
	store := newMockStore()
	client := &mockClient{}
	engine := newTestEngine(store, client)

	err := engine.SyncProductBatch(225)
	require.NoError(t, err)

	assert.True(t, store.flags[models.OptionProductSyncDone])
	assert.Empty(t, client.bulkBatches, "nothing uploaded")
}

func TestSyncProductBatchPartialFailure(t *testing.T) {
	store := newMockStore()
	store.unsyncedProducts = []string{"p1", "p2", "p3"}
	client := &mockClient{
		bulkResult: success(`{"errors":[{"error":{"product_id":"p2"}}]}`),
	}
	engine := newTestEngine(store, client)

	err := engine.SyncProductBatch(225)
	require.NoError(t, err)

	require.Len(t, client.bulkBatches, 1)
	assert.Len(t, client.bulkBatches[0], 3)

	assert.Equal(t, models.SyncStatusSynced, store.productMarks["p1"])
	assert.Equal(t, models.SyncStatusSkipped, store.productMarks["p2"])
	assert.Equal(t, models.SyncStatusSynced, store.productMarks["p3"])
	assert.False(t, store.flags[models.OptionProductSyncDone], "flag waits for an empty page")
}

func TestSyncProductBatchPermanentSkipsAll(t *testing.T) {
	store := newMockStore()
	store.unsyncedProducts = []string{"p1", "p2"}
	client := &mockClient{bulkResult: permanent()}
	engine := newTestEngine(store, client)

	err := engine.SyncProductBatch(225)
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSkipped, store.productMarks["p1"])
	assert.Equal(t, models.SyncStatusSkipped, store.productMarks["p2"])
}

func TestSyncProductBatchTransientLeavesMarkers(t *testing.T) {
	store := newMockStore()
	store.unsyncedProducts = []string{"p1", "p2"}
	client := &mockClient{bulkResult: transient()}
	engine := newTestEngine(store, client)

	err := engine.SyncProductBatch(225)
	require.NoError(t, err)

	assert.Empty(t, store.productMarks, "same page re-selected next run")
	assert.False(t, store.flags[models.OptionProductSyncDone])
}

func TestSyncProductBatchSkipsTrashedProducts(t *testing.T) {
	store := newMockStore()
	store.unsyncedProducts = []string{"p1", "p2"}
	client := &mockClient{bulkResult: success(`{"errors":[]}`)}
	engine := NewEngine(store, &mockFormatter{skip: map[string]bool{"p1": true}}, client, logger.New("error"))

	err := engine.SyncProductBatch(225)
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSkipped, store.productMarks["p1"])
	assert.Equal(t, models.SyncStatusSynced, store.productMarks["p2"])
	require.Len(t, client.bulkBatches, 1)
	assert.Len(t, client.bulkBatches[0], 1, "trashed product not uploaded")
}

func TestSyncReceiptBatchEmptySetsFlag(t *testing.T) {
	store := newMockStore()
	client := &mockClient{}
	engine := newTestEngine(store, client)

	err := engine.SyncReceiptBatch(225)
	require.NoError(t, err)

	assert.True(t, store.flags[models.OptionReceiptSyncDone])
	assert.Zero(t, client.uploadCalls)
}

func TestSyncReceiptBatchFailuresByReference(t *testing.T) {
	store := newMockStore()
	store.unsyncedOrders = []string{"o1", "o2", "o3"}
	// mockFormatter uses the order id as the receipt reference.
	client := &mockClient{
		uploadResult: success(`{"errors":[{"error":{"reference":"o2"}}]}`),
	}
	engine := newTestEngine(store, client)

	err := engine.SyncReceiptBatch(225)
	require.NoError(t, err)

	assert.Equal(t, 1, client.uploadCalls)
	assert.Equal(t, models.SyncStatusSynced, store.orderMarks["o1"])
	assert.Equal(t, models.SyncStatusSkipped, store.orderMarks["o2"])
	assert.Equal(t, models.SyncStatusSynced, store.orderMarks["o3"])
}

func TestSyncReceiptBatchPermanentSkipsAll(t *testing.T) {
	store := newMockStore()
	store.unsyncedOrders = []string{"o1", "o2"}
	client := &mockClient{uploadResult: permanent()}
	engine := newTestEngine(store, client)

	err := engine.SyncReceiptBatch(225)
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSkipped, store.orderMarks["o1"])
	assert.Equal(t, models.SyncStatusSkipped, store.orderMarks["o2"])
}

func TestSyncReceiptBatchSkipsDeletedOrders(t *testing.T) {
	store := newMockStore()
	store.unsyncedOrders = []string{"o1", "o2"}
	client := &mockClient{uploadResult: success(`{"errors":[]}`)}
	engine := NewEngine(store, &mockFormatter{skip: map[string]bool{"o1": true}}, client, logger.New("error"))

	err := engine.SyncReceiptBatch(225)
	require.NoError(t, err)

	assert.Equal(t, models.SyncStatusSkipped, store.orderMarks["o1"])
	assert.Equal(t, models.SyncStatusSynced, store.orderMarks["o2"])
}
