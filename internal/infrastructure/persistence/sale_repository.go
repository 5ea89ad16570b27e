package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/datamark/backend/internal/domain/sales"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByIDForStore finds a sale with its items within a store
func (r *GormSaleRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("store_id = ? AND id = ?", storeID, id).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAllForStore finds sales for a store, items preloaded, newest first
func (r *GormSaleRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).
		Preload("Items").
		Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// CountForStore counts sales for a store
func (r *GormSaleRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&sales.Sale{}).Where("store_id = ?", storeID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save inserts a sale together with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "account_id":
			query = query.Where("account_id = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "since":
			query = query.Where("created_at >= ?", value)
		case "until":
			query = query.Where("created_at < ?", value)
		}
	}
	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
