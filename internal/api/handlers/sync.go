package handlers

import (
	"net/http"

	"receiptsync/internal/logger"
	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"
	"receiptsync/internal/store"
	"receiptsync/internal/sync"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	store  *store.Store
	engine *sync.Engine
	client *receiptful.Client
	logger *logger.Logger
}

func NewSyncHandler(store *store.Store, engine *sync.Engine, client *receiptful.Client, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{
		store:  store,
		engine: engine,
		client: client,
		logger: logger,
	}
}

// Queue lists everything awaiting a retry.
func (h *SyncHandler) Queue(c *gin.Context) {
	items, err := h.store.QueueSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch queue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Drain runs one drain pass immediately instead of waiting for the
// scheduler.
func (h *SyncHandler) Drain(c *gin.Context) {
	h.engine.DrainQueue()

	size, err := h.store.QueueSize()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read queue size"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"remaining": size})
}

func (h *SyncHandler) Status(c *gin.Context) {
	size, err := h.store.QueueSize()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read queue size"})
		return
	}

	productsDone, _ := h.store.Flag(models.OptionProductSyncDone)
	receiptsDone, _ := h.store.Flag(models.OptionReceiptSyncDone)

	c.JSON(http.StatusOK, gin.H{
		"queue_size":                size,
		"initial_product_sync_done": productsDone,
		"initial_receipt_sync_done": receiptsDone,
	})
}

// AccountKey returns the remote account's public key, cached until the
// API key changes.
func (h *SyncHandler) AccountKey(c *gin.Context) {
	key, err := h.store.Option(models.OptionPublicUserKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read cached key"})
		return
	}

	if key == "" {
		key, err = h.client.PublicUserKey()
		if err != nil {
			h.logger.Error("Failed to fetch public key: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch public key"})
			return
		}
		if err := h.store.SetOption(models.OptionPublicUserKey, key); err != nil {
			h.logger.Error("Failed to cache public key: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"public_key": key})
}
