package report

import (
	"context"
	"time"

	"github.com/datamark/backend/internal/domain/report"
	"github.com/datamark/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const topProductsLimit = 5

// DashboardService computes the store dashboard KPIs
type DashboardService struct {
	dashboardRepo report.DashboardRepository
	cache         report.SummaryCache
	cacheTTL      time.Duration
}

// NewDashboardService creates a new dashboard service. The cache is
// optional; pass nil to always compute from the database.
func NewDashboardService(dashboardRepo report.DashboardRepository, cache report.SummaryCache, cacheTTL time.Duration) *DashboardService {
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

// GetSummary returns the dashboard summary for a store, served from
// cache when a fresh entry exists.
func (s *DashboardService) GetSummary(ctx context.Context, storeID uuid.UUID) (*report.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, storeID)
		if err != nil {
			// Cache failures degrade to a database read
			logger.FromContext(ctx).Warn("summary cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	summary, err := s.compute(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, storeID, summary, s.cacheTTL); err != nil {
			logger.FromContext(ctx).Warn("summary cache write failed", zap.Error(err))
		}
	}

	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context, storeID uuid.UUID) (*report.DashboardSummary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totalAmount, totalCount, err := s.dashboardRepo.SalesTotals(ctx, storeID, time.Time{})
	if err != nil {
		return nil, err
	}

	todayAmount, todayCount, err := s.dashboardRepo.SalesTotals(ctx, storeID, startOfDay)
	if err != nil {
		return nil, err
	}

	avgTicket := decimal.Zero
	if todayCount > 0 {
		avgTicket = todayAmount.DivRound(decimal.NewFromInt(todayCount), 2)
	}

	activeProducts, lowStockProducts, err := s.dashboardRepo.ProductCounts(ctx, storeID)
	if err != nil {
		return nil, err
	}

	topProducts, err := s.dashboardRepo.TopProducts(ctx, storeID, startOfDay, topProductsLimit)
	if err != nil {
		return nil, err
	}
	if topProducts == nil {
		topProducts = []report.TopProduct{}
	}

	profitToday, err := s.dashboardRepo.GrossProfit(ctx, storeID, startOfDay)
	if err != nil {
		return nil, err
	}

	profitTotal, err := s.dashboardRepo.GrossProfit(ctx, storeID, time.Time{})
	if err != nil {
		return nil, err
	}

	return &report.DashboardSummary{
		TotalSalesAmount: totalAmount,
		TotalSalesCount:  totalCount,
		TodaySalesAmount: todayAmount,
		TodaySalesCount:  todayCount,
		AvgTicketToday:   avgTicket,
		ActiveProducts:   activeProducts,
		LowStockProducts: lowStockProducts,
		TopProductsToday: topProducts,
		GrossProfitToday: profitToday,
		GrossProfitTotal: profitTotal,
		GeneratedAt:      now,
	}, nil
}
