package catalog

import (
	"regexp"
	"strings"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product is flagged
// on the dashboard.
const LowStockThreshold = 10

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

// Product represents a sellable item in a store's catalog.
// It is the aggregate root for catalog operations; Stock is the single
// on-hand counter decremented by sales.
type Product struct {
	shared.StoreAggregateRoot
	SKU         string          `gorm:"type:varchar(50);uniqueIndex:idx_product_store_sku,priority:2"`
	Barcode     string          `gorm:"type:varchar(50);index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100);not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Cost        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(storeID uuid.UUID, name, category string) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	return &Product{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		Name:               strings.TrimSpace(name),
		Category:           strings.TrimSpace(category),
		Price:              decimal.Zero,
		Cost:               decimal.Zero,
		Stock:              0,
		IsActive:           true,
	}, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description, category string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateCategory(category); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.Category = strings.TrimSpace(category)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetSKU sets the product SKU, normalized to uppercase
func (p *Product) SetSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		p.SKU = ""
		return nil
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	if !skuPattern.MatchString(sku) {
		return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, digits, hyphens and underscores")
	}

	p.SKU = strings.ToUpper(sku)
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetPricing sets selling price and cost
func (p *Product) SetPricing(price, cost decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	p.Price = price
	p.Cost = cost
	p.Touch()
	p.IncrementVersion()

	return nil
}

// SetStock replaces the on-hand stock counter. Only catalog maintenance
// goes through here; sales never call it, they decrement conditionally
// inside the commit transaction.
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.Stock = stock
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Deactivate soft-deletes the product. Deactivated products keep their
// rows so historical sale lines stay resolvable.
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
	p.IncrementVersion()
}

// Activate reactivates the product
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
	p.IncrementVersion()
}

// IsLowStock reports whether the product falls under the dashboard
// low-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// HasStock reports whether the product can cover the requested quantity
func (p *Product) HasStock(quantity int) bool {
	return p.Stock >= quantity
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category cannot be empty")
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Product category cannot exceed 100 characters")
	}
	return nil
}
