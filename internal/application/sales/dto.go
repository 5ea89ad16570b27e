package sales

import (
	"time"

	"github.com/datamark/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleLineRequest is one requested cart line. Duplicate product IDs are
// allowed and stay separate lines on the committed sale. Quantity is
// validated per line by the service, after the product lookup, so an
// unknown product on an earlier line wins over a bad quantity.
type SaleLineRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity"`
}

// CreateSaleRequest represents a request to commit a POS sale
type CreateSaleRequest struct {
	AccountID *uuid.UUID        `json:"account_id"`
	Items     []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SaleItemResponse represents a committed sale line in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID        uuid.UUID          `json:"id"`
	StoreID   uuid.UUID          `json:"store_id"`
	UserID    uuid.UUID          `json:"user_id"`
	AccountID *uuid.UUID         `json:"account_id,omitempty"`
	Status    string             `json:"status"`
	Total     decimal.Decimal    `json:"total"`
	Items     []SaleItemResponse `json:"items"`
	CreatedAt time.Time          `json:"created_at"`
}

// ToSaleResponse converts a domain Sale to SaleResponse
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		})
	}

	return SaleResponse{
		ID:        s.ID,
		StoreID:   s.StoreID,
		UserID:    s.UserID,
		AccountID: s.AccountID,
		Status:    string(s.Status),
		Total:     s.Total,
		Items:     items,
		CreatedAt: s.CreatedAt,
	}
}
