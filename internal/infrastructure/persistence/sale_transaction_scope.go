package persistence

import (
	"context"
	"errors"

	appsales "github.com/datamark/backend/internal/application/sales"
	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/sales"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. The sale row, its items and the stock decrements all
// commit or roll back together.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// Any error from the function rolls the whole transaction back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides repositories bound to the
// current transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Sales returns the sale repository scoped to the current transaction
func (r *gormTransactionalRepositories) Sales() sales.SaleRepository {
	return NewGormSaleRepository(r.tx)
}

// Stock returns the stock decrementer scoped to the current transaction
func (r *gormTransactionalRepositories) Stock() sales.StockDecrementer {
	return NewGormStockDecrementer(r.tx)
}

// GormStockDecrementer performs guarded stock decrements. The guard
// lives in the WHERE clause, so two concurrent sales can never push
// stock below zero regardless of interleaving.
type GormStockDecrementer struct {
	db *gorm.DB
}

// NewGormStockDecrementer creates a new GormStockDecrementer
func NewGormStockDecrementer(db *gorm.DB) *GormStockDecrementer {
	return &GormStockDecrementer{db: db}
}

// DecrementStock subtracts quantity if at least that much remains.
// Returns false, without error, when the guard fails.
func (d *GormStockDecrementer) DecrementStock(ctx context.Context, storeID, productID uuid.UUID, quantity int) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("store_id = ? AND id = ? AND is_active = ? AND stock >= ?", storeID, productID, true, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AvailableStock reads the current stock counter
func (d *GormStockDecrementer) AvailableStock(ctx context.Context, storeID, productID uuid.UUID) (int, error) {
	var stock int
	err := d.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("store_id = ? AND id = ?", storeID, productID).
		Pluck("stock", &stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, shared.ErrNotFound
		}
		return 0, err
	}
	return stock, nil
}

// Ensure GormTransactionScope implements TransactionScope
var _ appsales.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appsales.TransactionalRepositories = (*gormTransactionalRepositories)(nil)

// Ensure GormStockDecrementer implements StockDecrementer
var _ sales.StockDecrementer = (*GormStockDecrementer)(nil)
