package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID            string      `json:"id" gorm:"type:uuid;primary_key"`
	Number        string      `json:"number" gorm:"unique;not null"`
	Status        string      `json:"status" gorm:"default:pending"`
	Date          time.Time   `json:"date"`
	Currency      string      `json:"currency" gorm:"default:USD"`
	Total         float64     `json:"total" gorm:"type:decimal(10,2)"`
	Subtotal      float64     `json:"subtotal" gorm:"type:decimal(10,2)"`
	Tax           float64     `json:"tax" gorm:"type:decimal(10,2)"`
	Email         string      `json:"email" gorm:"not null"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Company       *string     `json:"company"`
	AddressLine1  *string     `json:"address_line1"`
	AddressLine2  *string     `json:"address_line2"`
	City          *string     `json:"city"`
	State         *string     `json:"state"`
	Postcode      *string     `json:"postcode"`
	Country       *string     `json:"country"`
	Phone         *string     `json:"phone"`
	Gateway       string      `json:"gateway"`
	CustomerIP    *string     `json:"customer_ip"`
	DiscountCodes *string     `json:"discount_codes"`
	PurchaseKey   string      `json:"purchase_key"`
	ReceiptID     *string     `json:"receipt_id"`
	ReceiptLink   *string     `json:"receipt_link"`
	SyncStatus    string      `json:"sync_status" gorm:"default:pending"`
	SyncedAt      *time.Time  `json:"synced_at"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         string         `json:"id" gorm:"type:uuid;primary_key"`
	OrderID    string         `json:"order_id" gorm:"not null;index"`
	ProductID  string         `json:"product_id" gorm:"not null"`
	Name       string         `json:"name" gorm:"not null"`
	PriceName  *string        `json:"price_name"`
	Quantity   int            `json:"quantity" gorm:"default:1"`
	ItemPrice  float64        `json:"item_price" gorm:"type:decimal(10,2)"`
	Discount   float64        `json:"discount" gorm:"type:decimal(10,2)"`
	Files      []DownloadFile `json:"files" gorm:"serializer:json"`
	LicenseKey *string        `json:"license_key"`
}

type DownloadFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type OrderNote struct {
	ID        uint      `json:"id" gorm:"primary_key;auto_increment"`
	OrderID   string    `json:"order_id" gorm:"not null;index"`
	Note      string    `json:"note" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusComplete OrderStatus = "complete"
	OrderStatusRefunded OrderStatus = "refunded"
)

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
