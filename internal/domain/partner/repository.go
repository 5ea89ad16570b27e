package partner

import (
	"context"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Account, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Account, error)
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, account *Account) error
	DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Client, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Client, error)
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)
	Save(ctx context.Context, client *Client) error
}
