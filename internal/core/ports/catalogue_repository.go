package ports

import (
	"context"

	"workplans/internal/core/domain/model/catalog"
	"workplans/internal/core/domain/model/kernel"
)

// CatalogueRepository is the read-only lookup for product definitions. The
// catalogue is owned by an external system; this port only ever reads it.
type CatalogueRepository interface {
	// GetProduct retrieves a product definition, with its processes and
	// their modules, by product identifier.
	GetProduct(ctx context.Context, id kernel.UUID) (*catalog.Product, error)

	// GetAvailableProducts retrieves all products currently offered.
	GetAvailableProducts(ctx context.Context) ([]*catalog.Product, error)
}
