package sales

import (
	"time"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the status of a sale. POS sales are committed
// in one step, so completed is currently the only state written.
type SaleStatus string

const (
	SaleStatusCompleted SaleStatus = "completed"
)

// SaleItem is a committed line of a sale. ProductName and UnitPrice are
// snapshots taken at sale time and never change afterwards, even if the
// product is renamed or repriced.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a committed sale line with price snapshot
func NewSaleItem(saleID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   time.Now(),
	}, nil
}

// Sale is the aggregate root for a completed point-of-sale transaction.
// A sale is immutable once committed: no line edits, no status changes.
type Sale struct {
	shared.StoreEntity
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID *uuid.UUID      `gorm:"type:uuid;index"`
	Status    SaleStatus      `gorm:"type:varchar(20);not null;default:'completed'"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items     []SaleItem      `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a completed sale from validated lines. The caller is
// responsible for having validated stock; duplicate product IDs remain
// independent lines.
func NewSale(storeID, userID uuid.UUID, accountID *uuid.UUID, items []SaleItem) (*Sale, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("EMPTY_SALE", "A sale must contain at least one item")
	}

	sale := &Sale{
		StoreEntity: shared.NewStoreEntity(storeID),
		UserID:      userID,
		AccountID:   accountID,
		Status:      SaleStatusCompleted,
		Total:       decimal.Zero,
	}

	for i := range items {
		items[i].SaleID = sale.ID
		sale.Total = sale.Total.Add(items[i].LineTotal)
	}
	sale.Items = items

	return sale, nil
}

// StockShortageError reports that a product cannot cover the requested
// quantity. It carries the details clients need to adjust the cart.
type StockShortageError struct {
	ProductID uuid.UUID `json:"product_id"`
	Available int       `json:"available"`
	Requested int       `json:"requested"`
}

// Error implements the error interface
func (e *StockShortageError) Error() string {
	return shared.ErrInsufficientStock.Message
}

// Unwrap lets errors.Is match the shared sentinel
func (e *StockShortageError) Unwrap() error {
	return shared.ErrInsufficientStock
}

// NewStockShortageError creates a stock shortage error for one line
func NewStockShortageError(productID uuid.UUID, available, requested int) *StockShortageError {
	return &StockShortageError{
		ProductID: productID,
		Available: available,
		Requested: requested,
	}
}
