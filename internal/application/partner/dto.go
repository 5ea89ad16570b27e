package partner

import (
	"time"

	"github.com/datamark/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to create a customer account
type CreateAccountRequest struct {
	Type        string           `json:"type" binding:"required,oneof=B2B B2C"`
	FullName    string           `json:"full_name" binding:"max=200"`
	CompanyName string           `json:"company_name" binding:"max=200"`
	TaxID       string           `json:"tax_id" binding:"max=50"`
	Email       string           `json:"email" binding:"max=200"`
	Phone       string           `json:"phone" binding:"max=50"`
	Address     string           `json:"address" binding:"max=300"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
}

// UpdateAccountRequest represents a partial update of an account
type UpdateAccountRequest struct {
	FullName    *string          `json:"full_name" binding:"omitempty,max=200"`
	CompanyName *string          `json:"company_name" binding:"omitempty,max=200"`
	TaxID       *string          `json:"tax_id" binding:"omitempty,max=50"`
	Email       *string          `json:"email" binding:"omitempty,max=200"`
	Phone       *string          `json:"phone" binding:"omitempty,max=50"`
	Address     *string          `json:"address" binding:"omitempty,max=300"`
	CreditLimit *decimal.Decimal `json:"credit_limit"`
	IsActive    *bool            `json:"is_active"`
}

// AccountListFilter represents filter options for the account list
type AccountListFilter struct {
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=B2B B2C"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	StoreID        uuid.UUID       `json:"store_id"`
	Type           string          `json:"type"`
	DisplayName    string          `json:"display_name"`
	FullName       string          `json:"full_name"`
	CompanyName    string          `json:"company_name"`
	TaxID          string          `json:"tax_id"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *partner.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		StoreID:        a.StoreID,
		Type:           string(a.Type),
		DisplayName:    a.DisplayName(),
		FullName:       a.FullName,
		CompanyName:    a.CompanyName,
		TaxID:          a.TaxID,
		Email:          a.Email,
		Phone:          a.Phone,
		Address:        a.Address,
		CreditLimit:    a.CreditLimit,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// CreateClientRequest represents a request to add a contact entry
type CreateClientRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	Email string `json:"email" binding:"max=200"`
	Phone string `json:"phone" binding:"max=50"`
	Notes string `json:"notes" binding:"max=2000"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ClientResponse represents a contact entry in API responses
type ClientResponse struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ToClientResponse converts a domain Client to ClientResponse
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}
