package partner

import (
	"strings"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Client is a lightweight contact-book entry. Unlike an Account it has
// no credit standing and never participates in sales.
type Client struct {
	shared.StoreEntity
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200)"`
	Phone string `gorm:"type:varchar(50)"`
	Notes string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// NewClient creates a new contact entry with trimmed fields
func NewClient(storeID uuid.UUID, name, email, phone, notes string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_NAME", "Client name cannot exceed 200 characters")
	}

	return &Client{
		StoreEntity: shared.NewStoreEntity(storeID),
		Name:        name,
		Email:       strings.ToLower(strings.TrimSpace(email)),
		Phone:       strings.TrimSpace(phone),
		Notes:       strings.TrimSpace(notes),
	}, nil
}
