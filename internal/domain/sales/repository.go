package sales

import (
	"context"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByIDForStore finds a sale with its items within a store
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Sale, error)

	// FindAllForStore finds sales for a store, items preloaded, newest first
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// CountForStore counts sales for a store
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)

	// Save inserts a sale together with its items
	Save(ctx context.Context, sale *Sale) error
}

// StockDecrementer performs the conditional stock decrement that backs a
// sale commit. The decrement only succeeds while enough stock remains,
// so concurrent sales can never drive stock negative.
type StockDecrementer interface {
	// DecrementStock subtracts quantity from the product's stock if at
	// least that much remains. Returns false, without error, when the
	// guard fails.
	DecrementStock(ctx context.Context, storeID, productID uuid.UUID, quantity int) (bool, error)

	// AvailableStock reads the current stock counter, used to report
	// shortage details after a failed decrement.
	AvailableStock(ctx context.Context, storeID, productID uuid.UUID) (int, error)
}
