package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Discount is a single-use coupon created from an upsell offer returned
// alongside a receipt.
type Discount struct {
	ID               string     `json:"id" gorm:"type:uuid;primary_key"`
	Code             string     `json:"code" gorm:"unique;not null"`
	Type             string     `json:"type" gorm:"default:flat"`
	Amount           float64    `json:"amount" gorm:"type:decimal(10,2)"`
	MaxUses          int        `json:"max_uses" gorm:"default:1"`
	SingleUse        bool       `json:"single_use" gorm:"default:true"`
	StartsAt         time.Time  `json:"starts_at"`
	ExpiresAt        *time.Time `json:"expires_at"`
	OrderID          string     `json:"order_id"`
	EmailRestriction *string    `json:"email_restriction"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

const (
	DiscountTypeFlat    = "flat"
	DiscountTypePercent = "percent"
)

func (d *Discount) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
