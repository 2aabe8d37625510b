package store

import (
	"receiptsync/internal/models"

	"gorm.io/gorm/clause"
)

// Enqueue adds or replaces the retry item for an entity. The composite
// key keeps the queue at one item per entity; the latest action wins.
func (s *Store) Enqueue(entityType, entityID, action string) error {
	item := models.QueueItem{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"action", "updated_at"}),
	}).Create(&item).Error
}

func (s *Store) RemoveQueueItem(entityType, entityID string) error {
	return s.db.Delete(&models.QueueItem{}, "entity_type = ? AND entity_id = ?", entityType, entityID).Error
}

// QueueSnapshot returns all items currently queued. Drain operates on
// this snapshot so items enqueued mid-drain wait for the next run.
func (s *Store) QueueSnapshot() ([]models.QueueItem, error) {
	var items []models.QueueItem
	err := s.db.Order("created_at ASC").Find(&items).Error
	return items, err
}

func (s *Store) QueueSize() (int64, error) {
	var count int64
	err := s.db.Model(&models.QueueItem{}).Count(&count).Error
	return count, err
}
