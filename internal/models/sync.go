package models

import "time"

// Entity types and actions a QueueItem can carry.
const (
	EntityTypeOrder   = "order"
	EntityTypeProduct = "product"

	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Sync marker states. Pending entities have never been accepted by the
// remote service; skipped entities were rejected with a permanent error
// and are excluded from further automatic attempts.
const (
	SyncStatusPending = "pending"
	SyncStatusSkipped = "skipped"
	SyncStatusSynced  = "synced"
)

// QueueItem is one pending retry. The composite primary key guarantees
// at most one item per entity; a newer action overwrites the older one.
type QueueItem struct {
	EntityType string    `json:"entity_type" gorm:"primary_key"`
	EntityID   string    `json:"entity_id" gorm:"primary_key"`
	Action     string    `json:"action" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Option is a process-wide key/value setting: bulk-sync completion
// flags and the cached remote public key live here.
type Option struct {
	Name  string `json:"name" gorm:"primary_key"`
	Value string `json:"value"`
}

// Option names.
const (
	OptionProductSyncDone = "initial_product_sync_done"
	OptionReceiptSyncDone = "initial_receipt_sync_done"
	OptionPublicUserKey   = "public_user_key"
)
