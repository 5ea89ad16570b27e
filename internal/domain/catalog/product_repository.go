package catalog

import (
	"context"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForStore finds a product by ID within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU within a store
	FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*Product, error)

	// FindAllForStore finds all products for a store
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Product, error)

	// FindActiveByIDs finds the active products among the given IDs for a store.
	// Missing, inactive and foreign-store IDs are simply absent from the result.
	FindActiveByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock updates a product with an optimistic version check
	SaveWithLock(ctx context.Context, product *Product) error

	// CountForStore counts products for a store
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists in the store
	ExistsBySKU(ctx context.Context, storeID uuid.UUID, sku string) (bool, error)
}
