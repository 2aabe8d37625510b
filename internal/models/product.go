package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID              string            `json:"id" gorm:"type:uuid;primary_key"`
	Title           string            `json:"title" gorm:"not null"`
	Description     *string           `json:"description"`
	Status          string            `json:"status" gorm:"default:publish"`
	Password        *string           `json:"password"`
	Permalink       string            `json:"permalink"`
	ImageURL        *string           `json:"image_url"`
	Categories      []ProductCategory `json:"categories" gorm:"serializer:json"`
	Tags            []string          `json:"tags" gorm:"serializer:json"`
	Note            *string           `json:"note"`
	VariablePricing bool              `json:"variable_pricing" gorm:"default:false"`
	Price           float64           `json:"price" gorm:"type:decimal(10,2)"`
	PriceTiers      []PriceTier       `json:"price_tiers" gorm:"serializer:json"`
	SyncStatus      string            `json:"sync_status" gorm:"default:pending"`
	SyncedAt        *time.Time        `json:"synced_at"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type ProductCategory struct {
	ID          string `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// PriceTier is one entry of a variable-priced product. Single-priced
// products use the Price column instead.
type PriceTier struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type ProductStatus string

const (
	ProductStatusPublish ProductStatus = "publish"
	ProductStatusDraft   ProductStatus = "draft"
	ProductStatusTrash   ProductStatus = "trash"
)

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
