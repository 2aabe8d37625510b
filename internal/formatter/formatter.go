package formatter

import (
	"errors"

	"receiptsync/internal/logger"
	"receiptsync/internal/models"
)

// ErrSkip marks an entity that is not eligible for sync: it no longer
// exists or is in a non-syncable state. Not an error condition.
var ErrSkip = errors.New("entity not eligible for sync")

// Source is the read access the formatter needs into the commerce store.
type Source interface {
	GetOrder(id string) (*models.Order, error)
	GetProduct(id string) (*models.Product, error)
	RelatedProducts(productID string, limit int) ([]models.Product, error)
	RandomProducts(limit int) ([]models.Product, error)
}

// Formatter converts local commerce entities into the Receiptful wire
// schema. Payloads are built fresh on every call from the current
// entity state, never cached.
type Formatter struct {
	source    Source
	fromEmail string
	enrichers []ItemEnricher
	logger    *logger.Logger
}

func New(source Source, fromEmail string, logger *logger.Logger) *Formatter {
	return &Formatter{
		source:    source,
		fromEmail: fromEmail,
		logger:    logger,
	}
}

// Register adds an enricher to the end of the chain.
func (f *Formatter) Register(enricher ItemEnricher) {
	f.enrichers = append(f.enrichers, enricher)
}
