package formatter

import (
	"errors"
	"fmt"

	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"

	"gorm.io/gorm"
)

// Product builds the catalog payload for a product. Returns ErrSkip
// when the product no longer exists or sits in the trash.
func (f *Formatter) Product(productID string) (*receiptful.ProductData, error) {
	product, err := f.source.GetProduct(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkip
		}
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	if product.Status == string(models.ProductStatusTrash) {
		return nil, ErrSkip
	}

	// Hidden products still sync so existing receipts keep working, the
	// remote service just stops recommending them.
	hidden := product.Status != string(models.ProductStatusPublish) ||
		(product.Password != nil && *product.Password != "")

	var images []receiptful.Image
	if product.ImageURL != nil && *product.ImageURL != "" {
		images = append(images, receiptful.Image{Position: 0, URL: *product.ImageURL})
	}

	categories := make([]receiptful.Category, 0, len(product.Categories))
	for _, cat := range product.Categories {
		categories = append(categories, receiptful.Category{
			CategoryID:  cat.ID,
			Title:       cat.Title,
			Description: cat.Description,
			URL:         cat.URL,
		})
	}

	tags := product.Tags
	if tags == nil {
		tags = []string{}
	}

	return &receiptful.ProductData{
		ProductID:   product.ID,
		Title:       product.Title,
		Description: stripShortcodes(stringValue(product.Description)),
		Hidden:      hidden,
		URL:         product.Permalink,
		Images:      images,
		Tags:        tags,
		Categories:  categories,
		Variants:    productVariants(product),
	}, nil
}

// productVariants maps prices onto the API's variant list: one entry
// for a single-priced product, one per tier otherwise.
func productVariants(product *models.Product) []receiptful.Variant {
	if !product.VariablePricing {
		return []receiptful.Variant{{Price: Round2(product.Price)}}
	}

	variants := make([]receiptful.Variant, 0, len(product.PriceTiers))
	for _, tier := range product.PriceTiers {
		variants = append(variants, receiptful.Variant{Price: Round2(tier.Amount)})
	}
	return variants
}
