package formatter

import (
	"testing"
	"time"

	"receiptsync/internal/logger"
	"receiptsync/internal/models"
	"receiptsync/internal/receiptful"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubSource serves canned entities; absent ids behave like deleted rows.
type stubSource struct {
	orders   map[string]*models.Order
	products map[string]*models.Product
	related  []models.Product
	random   []models.Product
}

func (s *stubSource) GetOrder(id string) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSource) GetProduct(id string) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubSource) RelatedProducts(productID string, limit int) ([]models.Product, error) {
	return s.related, nil
}

func (s *stubSource) RandomProducts(limit int) ([]models.Product, error) {
	return s.random, nil
}

func strPtr(s string) *string { return &s }

func testOrder() *models.Order {
	return &models.Order{
		ID:       "o1",
		Number:   "1001",
		Date:     time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Currency: "USD",
		Total:    19.995,
		Email:    "buyer@example.com",
		Gateway:  "stripe",
		Items: []models.OrderItem{
			{
				ProductID: "p1",
				Name:      "Widget",
				PriceName: strPtr("Personal"),
				Quantity:  1,
				ItemPrice: 19.995,
				Files: []models.DownloadFile{
					{Name: "widget.zip", URL: "https://shop/dl/widget.zip"},
				},
			},
		},
	}
}

func TestReceiptMissingOrderSkips(t *testing.T) {
	f := New(&stubSource{}, "shop@example.com", logger.New("error"))

	_, err := f.Receipt("gone")
	assert.ErrorIs(t, err, ErrSkip)
}

func TestReceiptBasicFields(t *testing.T) {
	source := &stubSource{
		orders:   map[string]*models.Order{"o1": testOrder()},
		products: map[string]*models.Product{},
	}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14T09:30:00Z", data.Date)
	assert.Equal(t, "1001", data.Reference)
	assert.Equal(t, "USD", data.Currency)
	assert.Equal(t, "20.00", data.Amount)
	assert.Equal(t, "buyer@example.com", data.To)
	assert.Equal(t, "shop@example.com", data.From)
	assert.Equal(t, "stripe", data.Payment.Type)

	require.Len(t, data.Items, 1)
	item := data.Items[0]
	assert.Equal(t, "p1", item.Reference)
	assert.Equal(t, "Widget - Personal", item.Description)
	assert.Equal(t, "20.00", item.Amount)
	require.Len(t, item.DownloadURLs, 1)
	assert.Equal(t, "Download widget.zip", item.DownloadURLs[0].Key)
	assert.Equal(t, "https://shop/dl/widget.zip", item.DownloadURLs[0].Value)
}

func TestReceiptNamelessItem(t *testing.T) {
	order := testOrder()
	order.Items[0].Name = ""
	order.Items[0].PriceName = nil
	source := &stubSource{orders: map[string]*models.Order{"o1": order}}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)
	assert.Equal(t, "Nameless product", data.Items[0].Description)
}

func TestReceiptProductNoteMeta(t *testing.T) {
	source := &stubSource{
		orders: map[string]*models.Order{"o1": testOrder()},
		products: map[string]*models.Product{
			"p1": {ID: "p1", Title: "Widget", Note: strPtr("Requires v2 runtime")},
		},
	}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)
	require.Len(t, data.Items[0].Metas, 1)
	assert.Equal(t, "Note", data.Items[0].Metas[0].Key)
	assert.Equal(t, "Requires v2 runtime", data.Items[0].Metas[0].Value)
}

func TestReceiptBillingDefaultsToEmptyStrings(t *testing.T) {
	source := &stubSource{orders: map[string]*models.Order{"o1": testOrder()}}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)

	// Nil address fields surface as "" on the wire, never null.
	assert.Equal(t, "", data.Billing.Address.Company)
	assert.Equal(t, "", data.Billing.Address.AddressLine1)
	assert.Equal(t, "", data.Billing.Address.Country)
	assert.Equal(t, "", data.Billing.Phone)
	assert.Equal(t, "", data.CustomerIP)
	assert.Equal(t, "buyer@example.com", data.Billing.Email)
}

func TestReceiptSubtotals(t *testing.T) {
	order := testOrder()
	order.DiscountCodes = strPtr("SAVE10")
	order.Items[0].Discount = 2.5
	order.Subtotal = 18.0
	order.Tax = 1.995
	source := &stubSource{orders: map[string]*models.Order{"o1": order}}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)

	require.Len(t, data.Subtotals, 3)
	assert.Equal(t, receiptful.Subtotal{Description: "Discount", Amount: "2.50"}, data.Subtotals[0])
	assert.Equal(t, receiptful.Subtotal{Description: "Subtotal", Amount: "18.00"}, data.Subtotals[1])
	assert.Equal(t, receiptful.Subtotal{Description: "Taxes", Amount: "2.00"}, data.Subtotals[2])
}

func TestReceiptNoSubtotalsWithoutDiscountOrTax(t *testing.T) {
	source := &stubSource{orders: map[string]*models.Order{"o1": testOrder()}}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)
	assert.Empty(t, data.Subtotals)
}

func TestReceiptRelatedProducts(t *testing.T) {
	source := &stubSource{
		orders: map[string]*models.Order{"o1": testOrder()},
		related: []models.Product{
			{
				Title:       "Gadget",
				Permalink:   "https://shop/gadget",
				ImageURL:    strPtr("https://shop/gadget.png"),
				Description: strPtr("<p>A fine gadget.</p>"),
			},
		},
	}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)

	require.Len(t, data.Upsell.Products, 1)
	rel := data.Upsell.Products[0]
	assert.Equal(t, "Gadget", rel.Title)
	assert.Equal(t, "https://shop/gadget", rel.ActionURL)
	assert.Equal(t, "https://shop/gadget.png", rel.Image)
	assert.Equal(t, "A fine gadget.", rel.Description)
}

func TestReceiptRelatedFallsBackToRandom(t *testing.T) {
	source := &stubSource{
		orders: map[string]*models.Order{"o1": testOrder()},
		random: []models.Product{{Title: "Filler", Permalink: "https://shop/filler"}},
	}
	f := New(source, "shop@example.com", logger.New("error"))

	data, err := f.Receipt("o1")
	require.NoError(t, err)
	require.Len(t, data.Upsell.Products, 1)
	assert.Equal(t, "Filler", data.Upsell.Products[0].Title)
}

func TestLicenseEnricherAppendsKeys(t *testing.T) {
	order := testOrder()
	order.Items[0].LicenseKey = strPtr("ABCD-1234")
	source := &stubSource{orders: map[string]*models.Order{"o1": order}}
	f := New(source, "shop@example.com", logger.New("error"))
	f.Register(NewLicenseEnricher())

	data, err := f.Receipt("o1")
	require.NoError(t, err)

	metas := data.Items[0].Metas
	require.Len(t, metas, 1)
	assert.Equal(t, "License key", metas[0].Key)
	assert.Equal(t, "ABCD-1234", metas[0].Value)
}

func TestLicenseEnricherSkipsItemsWithoutKeys(t *testing.T) {
	source := &stubSource{orders: map[string]*models.Order{"o1": testOrder()}}
	f := New(source, "shop@example.com", logger.New("error"))
	f.Register(NewLicenseEnricher())

	data, err := f.Receipt("o1")
	require.NoError(t, err)
	assert.Empty(t, data.Items[0].Metas)
}
