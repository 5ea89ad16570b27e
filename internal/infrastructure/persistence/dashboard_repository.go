package persistence

import (
	"context"
	"time"

	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/report"
	"github.com/datamark/backend/internal/domain/sales"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDashboardRepository computes KPI aggregates with raw SQL. The
// figures come straight from the sales tables, never from the cache.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewGormDashboardRepository creates a new GormDashboardRepository
func NewGormDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// SalesTotals returns amount sum and count of completed sales since the
// given time; a zero time means all time.
func (r *GormDashboardRepository) SalesTotals(ctx context.Context, storeID uuid.UUID, since time.Time) (decimal.Decimal, int64, error) {
	var row struct {
		Amount decimal.Decimal
		Count  int64
	}

	query := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Select("COALESCE(SUM(total), 0) AS amount, COUNT(*) AS count").
		Where("store_id = ? AND status = ?", storeID, sales.SaleStatusCompleted)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, 0, err
	}
	return row.Amount, row.Count, nil
}

// ProductCounts returns the number of active products and how many of
// them sit under the low-stock threshold.
func (r *GormDashboardRepository) ProductCounts(ctx context.Context, storeID uuid.UUID) (int64, int64, error) {
	var active int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("store_id = ? AND is_active = ?", storeID, true).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}

	var lowStock int64
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("store_id = ? AND is_active = ? AND stock < ?", storeID, true, catalog.LowStockThreshold).
		Count(&lowStock).Error; err != nil {
		return 0, 0, err
	}

	return active, lowStock, nil
}

// TopProducts ranks products by quantity sold since the given time
func (r *GormDashboardRepository) TopProducts(ctx context.Context, storeID uuid.UUID, since time.Time, limit int) ([]report.TopProduct, error) {
	var rows []report.TopProduct

	query := r.db.WithContext(ctx).Model(&sales.SaleItem{}).
		Select("sale_items.product_id, sale_items.product_name, SUM(sale_items.quantity) AS quantity, COALESCE(SUM(sale_items.line_total), 0) AS amount").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where("sales.store_id = ? AND sales.status = ?", storeID, sales.SaleStatusCompleted)
	if !since.IsZero() {
		query = query.Where("sales.created_at >= ?", since)
	}

	err := query.
		Group("sale_items.product_id, sale_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GrossProfit sums (unit_price - product cost) * quantity over sale
// lines since the given time. Lines of since-deleted products fall back
// to zero cost.
func (r *GormDashboardRepository) GrossProfit(ctx context.Context, storeID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	var row struct {
		Profit decimal.Decimal
	}

	query := r.db.WithContext(ctx).Model(&sales.SaleItem{}).
		Select("COALESCE(SUM((sale_items.unit_price - COALESCE(products.cost, 0)) * sale_items.quantity), 0) AS profit").
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Joins("LEFT JOIN products ON products.id = sale_items.product_id").
		Where("sales.store_id = ? AND sales.status = ?", storeID, sales.SaleStatusCompleted)
	if !since.IsZero() {
		query = query.Where("sales.created_at >= ?", since)
	}

	if err := query.Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Profit, nil
}

// Ensure GormDashboardRepository implements DashboardRepository
var _ report.DashboardRepository = (*GormDashboardRepository)(nil)
