package sales

import (
	"context"
	"fmt"

	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/partner"
	"github.com/datamark/backend/internal/domain/report"
	"github.com/datamark/backend/internal/domain/sales"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// SaleService commits and reads point-of-sale transactions.
//
// CreateSale works in two phases: validate everything against a
// consistent read first, then commit sale, items and stock decrements in
// a single database transaction. The decrement re-checks stock inside
// the transaction, so two concurrent sales over the same product can
// never drive stock negative; the loser rolls back entirely.
type SaleService struct {
	productRepo  catalog.ProductRepository
	accountRepo  partner.AccountRepository
	saleRepo     sales.SaleRepository
	txScope      TransactionScope
	summaryCache report.SummaryCache
}

// NewSaleService creates a new SaleService. summaryCache may be nil when
// dashboard caching is disabled.
func NewSaleService(
	productRepo catalog.ProductRepository,
	accountRepo partner.AccountRepository,
	saleRepo sales.SaleRepository,
	txScope TransactionScope,
	summaryCache report.SummaryCache,
) *SaleService {
	return &SaleService{
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		saleRepo:     saleRepo,
		txScope:      txScope,
		summaryCache: summaryCache,
	}
}

// CreateSale validates the cart and commits it atomically
func (s *SaleService) CreateSale(ctx context.Context, storeID, userID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "A sale must contain at least one item")
	}

	if req.AccountID != nil {
		if _, err := s.accountRepo.FindByIDForStore(ctx, storeID, *req.AccountID); err != nil {
			return nil, err
		}
	}

	products, err := s.fetchProducts(ctx, storeID, req.Items)
	if err != nil {
		return nil, err
	}

	// Validate every line before committing anything, in request order:
	// unknown product, then quantity, then stock. Lines referencing the
	// same product are checked independently here; the conditional
	// decrement below still catches their combined overage.
	items := make([]sales.SaleItem, 0, len(req.Items))
	for _, line := range req.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND",
				fmt.Sprintf("Product not found: %s", line.ProductID))
		}
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY",
				fmt.Sprintf("Quantity for product %s must be a positive integer", line.ProductID))
		}
		if !product.HasStock(line.Quantity) {
			return nil, sales.NewStockShortageError(product.ID, product.Stock, line.Quantity)
		}

		item, err := sales.NewSaleItem(uuid.Nil, product.ID, product.Name, line.Quantity, product.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	sale, err := sales.NewSale(storeID, userID, req.AccountID, items)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}

		for _, item := range sale.Items {
			ok, err := repos.Stock().DecrementStock(ctx, storeID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent sale drained the stock between the
				// validation read and this decrement.
				available, readErr := repos.Stock().AvailableStock(ctx, storeID, item.ProductID)
				if readErr != nil {
					available = 0
				}
				return sales.NewStockShortageError(item.ProductID, available, item.Quantity)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.summaryCache != nil {
		// Best effort. A stale dashboard entry expires on its own.
		_ = s.summaryCache.Invalidate(ctx, storeID)
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// Get returns a sale with its items
func (s *SaleService) Get(ctx context.Context, storeID, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToSaleResponse(sale)
	return &resp, nil
}

// List returns sales for a store, newest first
func (s *SaleService) List(ctx context.Context, storeID uuid.UUID, filter SaleListFilter) (*shared.Paginated[SaleResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	results, err := s.saleRepo.FindAllForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.CountForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	items := make([]SaleResponse, 0, len(results))
	for i := range results {
		items = append(items, ToSaleResponse(&results[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// fetchProducts loads the active products referenced by the cart in one
// query and indexes them by ID. Missing, inactive and foreign-store
// products simply stay absent from the map.
func (s *SaleService) fetchProducts(ctx context.Context, storeID uuid.UUID, lines []SaleLineRequest) (map[uuid.UUID]*catalog.Product, error) {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}

	products, err := s.productRepo.FindActiveByIDs(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
