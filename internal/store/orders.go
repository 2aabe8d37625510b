package store

import (
	"fmt"
	"time"

	"receiptsync/internal/models"
)

func (s *Store) GetOrder(id string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) CreateOrder(order *models.Order) error {
	if err := s.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *Store) ListOrders(offset, limit int) ([]models.Order, int64, error) {
	var orders []models.Order
	var total int64

	query := s.db.Model(&models.Order{})
	query.Count(&total)

	if err := query.Preload("Items").Offset(offset).Limit(limit).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (s *Store) CompleteOrder(id string) error {
	return s.db.Model(&models.Order{}).Where("id = ?", id).
		Update("status", string(models.OrderStatusComplete)).Error
}

// SetReceipt records the remote receipt id and webview link. The id is
// written once; later calls for the same order are no-ops.
func (s *Store) SetReceipt(orderID, receiptID, link string) error {
	return s.db.Model(&models.Order{}).
		Where("id = ? AND receipt_id IS NULL", orderID).
		Updates(map[string]interface{}{
			"receipt_id":   receiptID,
			"receipt_link": link,
		}).Error
}

// ReceiptID returns the remote receipt id for an order, or "" when the
// order has not been accepted by the remote service yet.
func (s *Store) ReceiptID(orderID string) (string, error) {
	var order models.Order
	if err := s.db.Select("receipt_id").First(&order, "id = ?", orderID).Error; err != nil {
		return "", err
	}
	if order.ReceiptID == nil {
		return "", nil
	}
	return *order.ReceiptID, nil
}

func (s *Store) MarkOrderSynced(orderID string, t time.Time) error {
	return s.db.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"sync_status": models.SyncStatusSynced,
			"synced_at":   t,
		}).Error
}

// MarkOrderSkipped excludes an order from further automatic sync
// attempts after a permanent rejection.
func (s *Store) MarkOrderSkipped(orderID string) error {
	return s.db.Model(&models.Order{}).Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"sync_status": models.SyncStatusSkipped,
			"synced_at":   nil,
		}).Error
}

// UnsyncedOrders selects orders the initial bulk upload still has to
// cover: never accepted, never permanently rejected, no receipt yet.
func (s *Store) UnsyncedOrders(limit int) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.Order{}).
		Where("sync_status = ? AND receipt_id IS NULL", models.SyncStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *Store) AddOrderNote(orderID, note string) error {
	return s.db.Create(&models.OrderNote{OrderID: orderID, Note: note}).Error
}

func (s *Store) OrderNotes(orderID string) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	err := s.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&notes).Error
	return notes, err
}

func (s *Store) DiscountExists(code string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Discount{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateDiscount(discount *models.Discount) error {
	if err := s.db.Create(discount).Error; err != nil {
		return fmt.Errorf("failed to create discount: %w", err)
	}
	return nil
}
