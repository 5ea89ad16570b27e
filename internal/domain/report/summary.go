package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopProduct is one row of the "best sellers today" ranking
type TopProduct struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Amount      decimal.Decimal `json:"amount"`
}

// DashboardSummary aggregates the KPIs shown on the store dashboard.
// "Today" is measured in the server's local day starting at midnight.
type DashboardSummary struct {
	TotalSalesAmount decimal.Decimal `json:"total_sales_amount"`
	TotalSalesCount  int64           `json:"total_sales_count"`
	TodaySalesAmount decimal.Decimal `json:"today_sales_amount"`
	TodaySalesCount  int64           `json:"today_sales_count"`
	AvgTicketToday   decimal.Decimal `json:"avg_ticket_today"`
	ActiveProducts   int64           `json:"active_products"`
	LowStockProducts int64           `json:"low_stock_products"`
	TopProductsToday []TopProduct    `json:"top_products_today"`
	GrossProfitToday decimal.Decimal `json:"gross_profit_today"`
	GrossProfitTotal decimal.Decimal `json:"gross_profit_total"`
	GeneratedAt      time.Time       `json:"generated_at"`
}

// DashboardRepository aggregates KPI figures straight from the database
type DashboardRepository interface {
	// SalesTotals returns amount sum and count of completed sales since
	// the given time; a zero time means all time.
	SalesTotals(ctx context.Context, storeID uuid.UUID, since time.Time) (decimal.Decimal, int64, error)

	// ProductCounts returns the number of active products and how many
	// of them sit under the low-stock threshold.
	ProductCounts(ctx context.Context, storeID uuid.UUID) (active int64, lowStock int64, err error)

	// TopProducts ranks products by quantity sold since the given time.
	TopProducts(ctx context.Context, storeID uuid.UUID, since time.Time, limit int) ([]TopProduct, error)

	// GrossProfit sums (unit_price - product cost) * quantity over sale
	// lines since the given time; a zero time means all time.
	GrossProfit(ctx context.Context, storeID uuid.UUID, since time.Time) (decimal.Decimal, error)
}

// SummaryCache caches computed summaries per store
type SummaryCache interface {
	Get(ctx context.Context, storeID uuid.UUID) (*DashboardSummary, error)
	Set(ctx context.Context, storeID uuid.UUID, summary *DashboardSummary, ttl time.Duration) error
	Invalidate(ctx context.Context, storeID uuid.UUID) error
}
