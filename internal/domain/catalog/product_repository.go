package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByNameKeys finds products whose normalized name key is in the
	// given set. Used to batch-load the price table for one settlement run.
	FindByNameKeys(ctx context.Context, nameKeys []string) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
