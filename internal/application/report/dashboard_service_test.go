package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/datamark/backend/internal/domain/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) SalesTotals(ctx context.Context, storeID uuid.UUID, since time.Time) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, storeID, since)
	return args.Get(0).(decimal.Decimal), args.Get(1).(int64), args.Error(2)
}

func (m *MockDashboardRepository) ProductCounts(ctx context.Context, storeID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockDashboardRepository) TopProducts(ctx context.Context, storeID uuid.UUID, since time.Time, limit int) ([]report.TopProduct, error) {
	args := m.Called(ctx, storeID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]report.TopProduct), args.Error(1)
}

func (m *MockDashboardRepository) GrossProfit(ctx context.Context, storeID uuid.UUID, since time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, storeID, since)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) Get(ctx context.Context, storeID uuid.UUID) (*report.DashboardSummary, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.DashboardSummary), args.Error(1)
}

func (m *MockSummaryCache) Set(ctx context.Context, storeID uuid.UUID, summary *report.DashboardSummary, ttl time.Duration) error {
	args := m.Called(ctx, storeID, summary, ttl)
	return args.Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context, storeID uuid.UUID) error {
	args := m.Called(ctx, storeID)
	return args.Error(0)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("computes KPIs from repository figures", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		service := NewDashboardService(repo, nil, time.Minute)

		repo.On("SalesTotals", ctx, storeID, time.Time{}).Return(decimal.NewFromInt(1000), int64(40), nil)
		repo.On("SalesTotals", ctx, storeID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(90), int64(4), nil)
		repo.On("ProductCounts", ctx, storeID).Return(int64(25), int64(3), nil)
		repo.On("TopProducts", ctx, storeID, mock.AnythingOfType("time.Time"), 5).Return([]report.TopProduct{
			{ProductID: uuid.New(), ProductName: "Coffee Beans 1kg", Quantity: 12, Amount: decimal.NewFromInt(60)},
		}, nil)
		repo.On("GrossProfit", ctx, storeID, mock.AnythingOfType("time.Time")).Return(decimal.NewFromInt(30), nil).Once()
		repo.On("GrossProfit", ctx, storeID, time.Time{}).Return(decimal.NewFromInt(400), nil).Once()

		summary, err := service.GetSummary(ctx, storeID)

		require.NoError(t, err)
		assert.True(t, summary.TotalSalesAmount.Equal(decimal.NewFromInt(1000)))
		assert.Equal(t, int64(40), summary.TotalSalesCount)
		assert.True(t, summary.TodaySalesAmount.Equal(decimal.NewFromInt(90)))
		assert.Equal(t, int64(4), summary.TodaySalesCount)
		assert.True(t, summary.AvgTicketToday.Equal(decimal.NewFromFloat(22.5)))
		assert.Equal(t, int64(25), summary.ActiveProducts)
		assert.Equal(t, int64(3), summary.LowStockProducts)
		assert.Len(t, summary.TopProductsToday, 1)
		assert.True(t, summary.GrossProfitToday.Equal(decimal.NewFromInt(30)))
		assert.True(t, summary.GrossProfitTotal.Equal(decimal.NewFromInt(400)))
		assert.False(t, summary.GeneratedAt.IsZero())
	})

	t.Run("average ticket is zero when no sales today", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		service := NewDashboardService(repo, nil, time.Minute)

		repo.On("SalesTotals", ctx, storeID, time.Time{}).Return(decimal.NewFromInt(500), int64(10), nil)
		repo.On("SalesTotals", ctx, storeID, mock.AnythingOfType("time.Time")).Return(decimal.Zero, int64(0), nil)
		repo.On("ProductCounts", ctx, storeID).Return(int64(5), int64(0), nil)
		repo.On("TopProducts", ctx, storeID, mock.AnythingOfType("time.Time"), 5).Return(nil, nil)
		repo.On("GrossProfit", ctx, storeID, mock.Anything).Return(decimal.Zero, nil)

		summary, err := service.GetSummary(ctx, storeID)

		require.NoError(t, err)
		assert.True(t, summary.AvgTicketToday.IsZero())
		assert.NotNil(t, summary.TopProductsToday)
		assert.Empty(t, summary.TopProductsToday)
	})

	t.Run("serves a cached summary without touching the repository", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		cache := new(MockSummaryCache)
		service := NewDashboardService(repo, cache, time.Minute)

		cached := &report.DashboardSummary{TotalSalesCount: 7, GeneratedAt: time.Now()}
		cache.On("Get", ctx, storeID).Return(cached, nil)

		summary, err := service.GetSummary(ctx, storeID)

		require.NoError(t, err)
		assert.Equal(t, cached, summary)
		repo.AssertNotCalled(t, "SalesTotals")
	})

	t.Run("computes and stores on cache miss", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		cache := new(MockSummaryCache)
		service := NewDashboardService(repo, cache, 30*time.Second)

		cache.On("Get", ctx, storeID).Return(nil, nil)
		repo.On("SalesTotals", ctx, storeID, mock.Anything).Return(decimal.Zero, int64(0), nil)
		repo.On("ProductCounts", ctx, storeID).Return(int64(0), int64(0), nil)
		repo.On("TopProducts", ctx, storeID, mock.Anything, 5).Return(nil, nil)
		repo.On("GrossProfit", ctx, storeID, mock.Anything).Return(decimal.Zero, nil)
		cache.On("Set", ctx, storeID, mock.AnythingOfType("*report.DashboardSummary"), 30*time.Second).Return(nil)

		_, err := service.GetSummary(ctx, storeID)

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors degrade to a database read", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		cache := new(MockSummaryCache)
		service := NewDashboardService(repo, cache, time.Minute)

		cache.On("Get", ctx, storeID).Return(nil, errors.New("redis down"))
		repo.On("SalesTotals", ctx, storeID, mock.Anything).Return(decimal.Zero, int64(0), nil)
		repo.On("ProductCounts", ctx, storeID).Return(int64(0), int64(0), nil)
		repo.On("TopProducts", ctx, storeID, mock.Anything, 5).Return(nil, nil)
		repo.On("GrossProfit", ctx, storeID, mock.Anything).Return(decimal.Zero, nil)
		cache.On("Set", ctx, storeID, mock.Anything, time.Minute).Return(errors.New("redis down"))

		summary, err := service.GetSummary(ctx, storeID)

		require.NoError(t, err)
		assert.NotNil(t, summary)
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		repo := new(MockDashboardRepository)
		service := NewDashboardService(repo, nil, time.Minute)

		repo.On("SalesTotals", ctx, storeID, time.Time{}).Return(decimal.Zero, int64(0), errors.New("query failed"))

		_, err := service.GetSummary(ctx, storeID)

		assert.Error(t, err)
	})
}
