package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"

	appsales "github.com/datamark/backend/internal/application/sales"
	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupSalesTestDB creates an in-memory SQLite database for testing.
// The pool is capped at one connection so concurrent transactions
// serialize at the pool instead of hitting SQLite busy errors.
func setupSalesTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.Exec(`
		CREATE TABLE products (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			sku TEXT,
			barcode TEXT,
			name TEXT NOT NULL,
			description TEXT,
			category TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			cost NUMERIC NOT NULL DEFAULT 0,
			stock INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 1,
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE sales (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			account_id TEXT,
			status TEXT NOT NULL DEFAULT 'completed',
			total NUMERIC NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE sale_items (
			id TEXT PRIMARY KEY,
			sale_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			product_name TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price NUMERIC NOT NULL,
			line_total NUMERIC NOT NULL,
			created_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func TestCreateSale_ConcurrentRequestsNeverOversell(t *testing.T) {
	db := setupSalesTestDB(t)
	ctx := context.Background()

	productRepo := NewGormProductRepository(db)
	service := appsales.NewSaleService(
		productRepo,
		NewGormAccountRepository(db),
		NewGormSaleRepository(db),
		NewGormTransactionScope(db),
		nil,
	)

	storeID := uuid.New()
	userID := uuid.New()

	product, err := catalog.NewProduct(storeID, "Espresso Beans 1kg", "Coffee")
	require.NoError(t, err)
	require.NoError(t, product.SetPricing(decimal.NewFromFloat(18.50), decimal.NewFromFloat(9.20)))
	require.NoError(t, product.SetStock(3))
	require.NoError(t, productRepo.Save(ctx, product))

	// Each request fits individually, both together oversell: 2+2 > 3.
	// At most one may commit.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.CreateSale(ctx, storeID, userID, appsales.CreateSaleRequest{
				Items: []appsales.SaleLineRequest{{ProductID: product.ID, Quantity: 2}},
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	shortages := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, shared.ErrInsufficientStock):
			shortages++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, shortages)

	remaining, err := NewGormStockDecrementer(db).AvailableStock(ctx, storeID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	saleCount, err := NewGormSaleRepository(db).CountForStore(ctx, storeID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saleCount)

	// The loser's rollback must leave no orphaned lines behind
	var itemCount int64
	require.NoError(t, db.Table("sale_items").Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}
