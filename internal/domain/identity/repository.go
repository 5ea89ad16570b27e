package identity

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository defines the interface for store persistence
type StoreRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	Save(ctx context.Context, store *Store) error
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*User, error)

	// FindByEmail looks the user up across stores. Login happens before a
	// tenant is known, so email is the only key available.
	FindByEmail(ctx context.Context, email string) (*User, error)

	Save(ctx context.Context, user *User) error
}
