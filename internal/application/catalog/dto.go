package catalog

import (
	"time"

	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Category    string           `json:"category" binding:"required,min=1,max=100"`
	Description string           `json:"description" binding:"max=2000"`
	SKU         string           `json:"sku" binding:"max=50"`
	Barcode     string           `json:"barcode" binding:"max=50"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Stock       *int             `json:"stock"`
}

// UpdateProductRequest represents a partial update of a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Category    *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	SKU         *string          `json:"sku" binding:"omitempty,max=50"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=50"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Stock       *int             `json:"stock"`
	IsActive    *bool            `json:"is_active"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	StoreID     uuid.UUID       `json:"store_id"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Stock       int             `json:"stock"`
	IsActive    bool            `json:"is_active"`
	LowStock    bool            `json:"low_stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		IsActive:    p.IsActive,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}
