package store

import (
	"fmt"
	"math/rand"
	"time"

	"receiptsync/internal/models"
)

func (s *Store) GetProduct(id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) CreateProduct(product *models.Product) error {
	if err := s.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (s *Store) SaveProduct(product *models.Product) error {
	if err := s.db.Save(product).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

func (s *Store) ListProducts(offset, limit int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{})
	query.Count(&total)

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// TrashProduct moves a product to the trash locally. Remote deletion is
// the sync engine's job.
func (s *Store) TrashProduct(id string) error {
	return s.db.Model(&models.Product{}).Where("id = ?", id).
		Update("status", string(models.ProductStatusTrash)).Error
}

func (s *Store) MarkProductSynced(id string, t time.Time) error {
	return s.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"sync_status": models.SyncStatusSynced,
			"synced_at":   t,
		}).Error
}

func (s *Store) MarkProductSkipped(id string) error {
	return s.db.Model(&models.Product{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"sync_status": models.SyncStatusSkipped,
			"synced_at":   nil,
		}).Error
}

// UnsyncedProducts selects products the initial bulk sync still has to
// cover. Skipped products are deliberately excluded so one poison
// payload cannot block the batch forever.
func (s *Store) UnsyncedProducts(limit int) ([]string, error) {
	var ids []string
	err := s.db.Model(&models.Product{}).
		Where("sync_status = ?", models.SyncStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

// RelatedProducts finds up to limit published products sharing a
// category or tag with the given product. Only products with an image
// qualify; the result order is randomized.
func (s *Store) RelatedProducts(productID string, limit int) ([]models.Product, error) {
	source, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	// No taxonomy on the source means no related products
	if len(source.Categories) == 0 && len(source.Tags) == 0 {
		return nil, nil
	}

	var candidates []models.Product
	err = s.db.
		Where("status = ? AND id <> ? AND image_url IS NOT NULL", string(models.ProductStatusPublish), productID).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	// Categories and tags are JSON columns, so the overlap check happens
	// here rather than in SQL.
	sourceCats := make(map[string]bool)
	for _, cat := range source.Categories {
		sourceCats[cat.ID] = true
	}
	sourceTags := make(map[string]bool)
	for _, tag := range source.Tags {
		sourceTags[tag] = true
	}

	var related []models.Product
	for _, candidate := range candidates {
		if sharesTaxonomy(&candidate, sourceCats, sourceTags) {
			related = append(related, candidate)
		}
	}

	rand.Shuffle(len(related), func(i, j int) {
		related[i], related[j] = related[j], related[i]
	})

	if len(related) > limit {
		related = related[:limit]
	}
	return related, nil
}

// RandomProducts returns up to limit random published products with an
// image, used as a fallback when no related products exist.
func (s *Store) RandomProducts(limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.
		Where("status = ? AND image_url IS NOT NULL", string(models.ProductStatusPublish)).
		Order("RANDOM()").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func sharesTaxonomy(candidate *models.Product, cats, tags map[string]bool) bool {
	for _, cat := range candidate.Categories {
		if cats[cat.ID] {
			return true
		}
	}
	for _, tag := range candidate.Tags {
		if tags[tag] {
			return true
		}
	}
	return false
}
