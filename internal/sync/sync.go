package sync

import (
	"time"

	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"
)

// Client is the remote API surface the engine drives. Satisfied by
// receiptful.Client, stubbed in tests.
type Client interface {
	Receipt(data *receiptful.ReceiptData) *receiptful.Result
	ResendReceipt(receiptID string) *receiptful.Result
	UpdateProduct(productID string, data *receiptful.ProductData) *receiptful.Result
	UpdateProducts(data []*receiptful.ProductData) *receiptful.Result
	DeleteProduct(productID string) *receiptful.Result
	UploadReceipts(data []*receiptful.ReceiptData) *receiptful.Result
}

// Formatter builds wire payloads from local entities.
type Formatter interface {
	Receipt(orderID string) (*receiptful.ReceiptData, error)
	Product(productID string) (*receiptful.ProductData, error)
}

// Store is the persisted sync state the engine reads and mutates.
type Store interface {
	GetOrder(id string) (*models.Order, error)
	SetReceipt(orderID, receiptID, link string) error
	ReceiptID(orderID string) (string, error)
	MarkOrderSynced(orderID string, t time.Time) error
	MarkOrderSkipped(orderID string) error
	AddOrderNote(orderID, note string) error
	UnsyncedOrders(limit int) ([]string, error)
	DiscountExists(code string) (bool, error)
	CreateDiscount(discount *models.Discount) error

	MarkProductSynced(id string, t time.Time) error
	MarkProductSkipped(id string) error
	UnsyncedProducts(limit int) ([]string, error)

	Enqueue(entityType, entityID, action string) error
	RemoveQueueItem(entityType, entityID string) error
	QueueSnapshot() ([]models.QueueItem, error)

	Flag(name string) (bool, error)
	SetFlag(name string) error
}
