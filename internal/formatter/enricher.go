package formatter

import (
	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"
)

// ItemEnricher contributes extra metadata to formatted receipt items.
// Enrichers run in registration order, after base formatting, and
// receive items positionally matching order.Items.
type ItemEnricher interface {
	EnrichItems(order *models.Order, items []receiptful.Item) []receiptful.Item
}

// LicenseEnricher appends license keys recorded on order items, so
// customers find their keys on the receipt itself.
type LicenseEnricher struct{}

func NewLicenseEnricher() *LicenseEnricher {
	return &LicenseEnricher{}
}

func (e *LicenseEnricher) EnrichItems(order *models.Order, items []receiptful.Item) []receiptful.Item {
	for i, orderItem := range order.Items {
		if i >= len(items) {
			break
		}
		if orderItem.LicenseKey == nil || *orderItem.LicenseKey == "" {
			continue
		}
		items[i].Metas = append(items[i].Metas, receiptful.Meta{
			Key:   "License key",
			Value: *orderItem.LicenseKey,
		})
	}
	return items
}
