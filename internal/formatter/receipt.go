package formatter

import (
	"errors"
	"fmt"
	"time"

	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"

	"gorm.io/gorm"
)

const relatedProductLimit = 2

// Receipt builds the receipt payload for an order. Returns ErrSkip when
// the order no longer exists.
func (f *Formatter) Receipt(orderID string) (*receiptful.ReceiptData, error) {
	order, err := f.source.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkip
		}
		return nil, fmt.Errorf("failed to load order %s: %w", orderID, err)
	}

	items := f.receiptItems(order)
	for _, enricher := range f.enrichers {
		items = enricher.EnrichItems(order, items)
	}

	data := &receiptful.ReceiptData{
		Date:      order.Date.Format(time.RFC3339),
		Reference: order.Number,
		Currency:  order.Currency,
		Amount:    Amount(order.Total),
		To:        order.Email,
		From:      f.fromEmail,
		Payment: receiptful.Payment{
			Type: order.Gateway,
		},
		Items:      items,
		Subtotals:  f.receiptSubtotals(order),
		CustomerIP: stringValue(order.CustomerIP),
		Billing: receiptful.Billing{
			Address: receiptful.Address{
				FirstName:    order.FirstName,
				LastName:     order.LastName,
				Company:      stringValue(order.Company),
				AddressLine1: stringValue(order.AddressLine1),
				AddressLine2: stringValue(order.AddressLine2),
				City:         stringValue(order.City),
				State:        stringValue(order.State),
				Postcode:     stringValue(order.Postcode),
				Country:      stringValue(order.Country),
			},
			Phone: stringValue(order.Phone),
			Email: order.Email,
		},
		Upsell: receiptful.Upsell{
			Products: f.relatedProducts(order),
		},
	}

	return data, nil
}

func (f *Formatter) receiptItems(order *models.Order) []receiptful.Item {
	items := make([]receiptful.Item, 0, len(order.Items))

	for _, orderItem := range order.Items {
		description := orderItem.Name
		if description == "" {
			description = "Nameless product"
		}
		if orderItem.PriceName != nil && *orderItem.PriceName != "" {
			description += " - " + *orderItem.PriceName
		}

		var metas []receiptful.Meta
		if product, err := f.source.GetProduct(orderItem.ProductID); err == nil {
			if product.Note != nil && *product.Note != "" {
				metas = append(metas, receiptful.Meta{Key: "Note", Value: *product.Note})
			}
		}

		var downloadURLs []receiptful.Meta
		for _, file := range orderItem.Files {
			downloadURLs = append(downloadURLs, receiptful.Meta{
				Key:   fmt.Sprintf("Download %s", file.Name),
				Value: file.URL,
			})
		}

		items = append(items, receiptful.Item{
			Reference:    orderItem.ProductID,
			Description:  description,
			Quantity:     orderItem.Quantity,
			Amount:       Amount(orderItem.ItemPrice),
			DownloadURLs: downloadURLs,
			Metas:        metas,
		})
	}

	return items
}

func (f *Formatter) receiptSubtotals(order *models.Order) []receiptful.Subtotal {
	var subtotals []receiptful.Subtotal

	if order.DiscountCodes != nil && *order.DiscountCodes != "" {
		var discount float64
		for _, item := range order.Items {
			discount += item.Discount
		}
		subtotals = append(subtotals, receiptful.Subtotal{
			Description: "Discount",
			Amount:      Amount(discount),
		})
	}

	if order.Tax > 0 {
		subtotals = append(subtotals,
			receiptful.Subtotal{Description: "Subtotal", Amount: Amount(order.Subtotal)},
			receiptful.Subtotal{Description: "Taxes", Amount: Amount(order.Tax)},
		)
	}

	return subtotals
}

// relatedProducts picks up to two recommendations based on the first
// order item, falling back to random products when nothing shares a
// category or tag.
func (f *Formatter) relatedProducts(order *models.Order) []receiptful.RelatedProduct {
	if len(order.Items) == 0 {
		return nil
	}

	candidates, err := f.source.RelatedProducts(order.Items[0].ProductID, relatedProductLimit)
	if err != nil {
		f.logger.Debug("Failed to load related products for order %s: %v", order.ID, err)
	}
	if len(candidates) == 0 {
		candidates, err = f.source.RandomProducts(relatedProductLimit)
		if err != nil {
			f.logger.Debug("Failed to load random products for order %s: %v", order.ID, err)
		}
	}

	var related []receiptful.RelatedProduct
	for _, product := range candidates {
		title := product.Title
		if title == "" {
			title = "Nameless product"
		}
		related = append(related, receiptful.RelatedProduct{
			Title:       title,
			ActionURL:   product.Permalink,
			Image:       stringValue(product.ImageURL),
			Description: summarize(stringValue(product.Description), 100),
		})
	}
	return related
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
