package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	storeID := uuid.New()

	t.Run("creates active product with valid inputs", func(t *testing.T) {
		product, err := NewProduct(storeID, "Espresso Beans 1kg", "Coffee")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, storeID, product.StoreID)
		assert.Equal(t, "Espresso Beans 1kg", product.Name)
		assert.Equal(t, "Coffee", product.Category)
		assert.True(t, product.Price.IsZero())
		assert.True(t, product.Cost.IsZero())
		assert.Zero(t, product.Stock)
		assert.True(t, product.IsActive)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("trims name and category", func(t *testing.T) {
		product, err := NewProduct(storeID, "  Milk 1L  ", "  Dairy ")
		require.NoError(t, err)
		assert.Equal(t, "Milk 1L", product.Name)
		assert.Equal(t, "Dairy", product.Category)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct(storeID, "   ", "Coffee")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty category", func(t *testing.T) {
		_, err := NewProduct(storeID, "Espresso Beans", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "category cannot be empty")
	})
}

func TestProductSetSKU(t *testing.T) {
	product := mustProduct(t)

	t.Run("uppercases the SKU", func(t *testing.T) {
		require.NoError(t, product.SetSKU("esp-1kg"))
		assert.Equal(t, "ESP-1KG", product.SKU)
	})

	t.Run("rejects invalid characters", func(t *testing.T) {
		err := product.SetSKU("esp@1kg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can only contain letters")
	})

	t.Run("allows clearing the SKU", func(t *testing.T) {
		require.NoError(t, product.SetSKU(""))
		assert.Empty(t, product.SKU)
	})
}

func TestProductSetPricing(t *testing.T) {
	product := mustProduct(t)

	t.Run("sets price and cost", func(t *testing.T) {
		err := product.SetPricing(decimal.NewFromFloat(18.50), decimal.NewFromFloat(11.20))
		require.NoError(t, err)
		assert.True(t, product.Price.Equal(decimal.NewFromFloat(18.50)))
		assert.True(t, product.Cost.Equal(decimal.NewFromFloat(11.20)))
	})

	t.Run("rejects negative price", func(t *testing.T) {
		err := product.SetPricing(decimal.NewFromInt(-1), decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Price cannot be negative")
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		err := product.SetPricing(decimal.Zero, decimal.NewFromInt(-1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Cost cannot be negative")
	})
}

func TestProductStock(t *testing.T) {
	product := mustProduct(t)

	t.Run("sets stock", func(t *testing.T) {
		require.NoError(t, product.SetStock(25))
		assert.Equal(t, 25, product.Stock)
		assert.True(t, product.HasStock(25))
		assert.False(t, product.HasStock(26))
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		err := product.SetStock(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Stock cannot be negative")
	})

	t.Run("flags low stock below the threshold", func(t *testing.T) {
		require.NoError(t, product.SetStock(LowStockThreshold - 1))
		assert.True(t, product.IsLowStock())

		require.NoError(t, product.SetStock(LowStockThreshold))
		assert.False(t, product.IsLowStock())
	})
}

func TestProductDeactivate(t *testing.T) {
	product := mustProduct(t)
	version := product.GetVersion()

	product.Deactivate()
	assert.False(t, product.IsActive)
	assert.Equal(t, version+1, product.GetVersion())

	product.Activate()
	assert.True(t, product.IsActive)
}

func mustProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct(uuid.New(), "Espresso Beans 1kg", "Coffee")
	require.NoError(t, err)
	return product
}
