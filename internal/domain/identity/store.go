package identity

import (
	"strings"

	"github.com/datamark/backend/internal/domain/shared"
)

// Store represents a retail store. It is the tenant unit: every business
// row in the system belongs to exactly one store.
type Store struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(200);not null"`
	TaxID    string `gorm:"type:varchar(50)"`
	Address  string `gorm:"type:varchar(300)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new active store
func NewStore(name string) (*Store, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Store name cannot exceed 200 characters")
	}

	return &Store{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		IsActive:   true,
	}, nil
}

// Deactivate disables the store; its users can no longer log in
func (s *Store) Deactivate() {
	s.IsActive = false
	s.Touch()
}
