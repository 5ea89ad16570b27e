package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// Touch bumps the update timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// StoreEntity is an entity owned by a single store (the tenant unit).
// Every business row carries a StoreID and every query is scoped by it.
type StoreEntity struct {
	BaseEntity
	StoreID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewStoreEntity creates a new store-scoped entity
func NewStoreEntity(storeID uuid.UUID) StoreEntity {
	return StoreEntity{
		BaseEntity: NewBaseEntity(),
		StoreID:    storeID,
	}
}

// StoreAggregateRoot is a store-scoped aggregate with optimistic locking
type StoreAggregateRoot struct {
	StoreEntity
	Version int `gorm:"not null;default:1"`
}

// GetVersion returns the aggregate version for optimistic locking
func (a *StoreAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion increments the version number
func (a *StoreAggregateRoot) IncrementVersion() {
	a.Version++
}

// NewStoreAggregateRoot creates a new store-scoped aggregate root
func NewStoreAggregateRoot(storeID uuid.UUID) StoreAggregateRoot {
	return StoreAggregateRoot{
		StoreEntity: NewStoreEntity(storeID),
		Version:     1,
	}
}
