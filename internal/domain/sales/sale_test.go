package sales

import (
	"errors"
	"testing"

	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaleItem(t *testing.T) {
	saleID := uuid.New()
	productID := uuid.New()

	t.Run("computes line total from snapshot price", func(t *testing.T) {
		item, err := NewSaleItem(saleID, productID, "Espresso Beans 1kg", 3, decimal.NewFromFloat(18.50))
		require.NoError(t, err)

		assert.Equal(t, 3, item.Quantity)
		assert.True(t, item.UnitPrice.Equal(decimal.NewFromFloat(18.50)))
		assert.True(t, item.LineTotal.Equal(decimal.NewFromFloat(55.50)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewSaleItem(saleID, productID, "Espresso Beans 1kg", 0, decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a positive integer")
	})

	t.Run("rejects nil product", func(t *testing.T) {
		_, err := NewSaleItem(saleID, uuid.Nil, "Espresso Beans 1kg", 1, decimal.NewFromInt(10))
		require.Error(t, err)
	})
}

func TestNewSale(t *testing.T) {
	storeID := uuid.New()
	userID := uuid.New()

	t.Run("sums line totals and links items", func(t *testing.T) {
		a, err := NewSaleItem(uuid.Nil, uuid.New(), "Espresso Beans 1kg", 2, decimal.NewFromFloat(18.50))
		require.NoError(t, err)
		b, err := NewSaleItem(uuid.Nil, uuid.New(), "Milk 1L", 4, decimal.NewFromFloat(1.25))
		require.NoError(t, err)

		sale, err := NewSale(storeID, userID, nil, []SaleItem{*a, *b})
		require.NoError(t, err)

		assert.Equal(t, SaleStatusCompleted, sale.Status)
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(42.00)))
		require.Len(t, sale.Items, 2)
		for _, item := range sale.Items {
			assert.Equal(t, sale.ID, item.SaleID)
		}
	})

	t.Run("keeps duplicate products as independent lines", func(t *testing.T) {
		productID := uuid.New()
		a, err := NewSaleItem(uuid.Nil, productID, "Milk 1L", 1, decimal.NewFromFloat(1.25))
		require.NoError(t, err)
		b, err := NewSaleItem(uuid.Nil, productID, "Milk 1L", 2, decimal.NewFromFloat(1.25))
		require.NoError(t, err)

		sale, err := NewSale(storeID, userID, nil, []SaleItem{*a, *b})
		require.NoError(t, err)

		require.Len(t, sale.Items, 2)
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(3.75)))
	})

	t.Run("rejects empty sales", func(t *testing.T) {
		_, err := NewSale(storeID, userID, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one item")
	})
}

func TestStockShortageError(t *testing.T) {
	productID := uuid.New()
	err := NewStockShortageError(productID, 2, 5)

	assert.Equal(t, productID, err.ProductID)
	assert.Equal(t, 2, err.Available)
	assert.Equal(t, 5, err.Requested)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
}
