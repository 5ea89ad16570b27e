package persistence

import (
	"context"
	"errors"

	"github.com/datamark/backend/internal/domain/identity"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByID finds a store by its ID
func (r *GormStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Store, error) {
	var store identity.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &store, nil
}

// Save creates or updates a store
func (r *GormStoreRepository) Save(ctx context.Context, store *identity.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Ensure GormStoreRepository implements StoreRepository
var _ identity.StoreRepository = (*GormStoreRepository)(nil)
