package catalog

import (
	"context"

	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles catalog business operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, storeID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if req.SKU != "" {
		exists, err := s.productRepo.ExistsBySKU(ctx, storeID, req.SKU)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
		}
	}

	product, err := catalog.NewProduct(storeID, req.Name, req.Category)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if req.SKU != "" {
		if err := product.SetSKU(req.SKU); err != nil {
			return nil, err
		}
	}
	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}

	price := product.Price
	cost := product.Cost
	if req.Price != nil {
		price = *req.Price
	}
	if req.Cost != nil {
		cost = *req.Cost
	}
	if err := product.SetPricing(price, cost); err != nil {
		return nil, err
	}

	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Get returns a product by ID. A product belonging to another store is
// indistinguishable from a missing one.
func (s *ProductService) Get(ctx context.Context, storeID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns products for a store, newest first
func (s *ProductService) List(ctx context.Context, storeID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}
	if filter.Active != nil {
		f.Filters["is_active"] = *filter.Active
	}

	products, err := s.productRepo.FindAllForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.CountForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, ToProductResponse(&products[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update applies a partial update to a product
func (s *ProductService) Update(ctx context.Context, storeID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	loadedVersion := product.Version

	name := product.Name
	category := product.Category
	description := product.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Category != nil {
		category = *req.Category
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := product.Update(name, description, category); err != nil {
		return nil, err
	}

	if req.SKU != nil && *req.SKU != product.SKU {
		if *req.SKU != "" {
			exists, err := s.productRepo.ExistsBySKU(ctx, storeID, *req.SKU)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
			}
		}
		if err := product.SetSKU(*req.SKU); err != nil {
			return nil, err
		}
	}
	if req.Barcode != nil {
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}

	if req.Price != nil || req.Cost != nil {
		price := product.Price
		cost := product.Cost
		if req.Price != nil {
			price = *req.Price
		}
		if req.Cost != nil {
			cost = *req.Cost
		}
		if err := product.SetPricing(price, cost); err != nil {
			return nil, err
		}
	}

	if req.Stock != nil {
		if err := product.SetStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if req.IsActive != nil {
		if *req.IsActive {
			product.Activate()
		} else {
			product.Deactivate()
		}
	}

	// Each mutator above bumps the version. Collapse the bumps to a
	// single step past the loaded row so the lock check compares
	// against the version we actually read.
	product.Version = loadedVersion + 1

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// Deactivate soft-deletes a product. The row is kept so historical sale
// lines keep resolving.
func (s *ProductService) Deactivate(ctx context.Context, storeID, id uuid.UUID) error {
	product, err := s.productRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return err
	}

	product.Deactivate()
	return s.productRepo.SaveWithLock(ctx, product)
}
