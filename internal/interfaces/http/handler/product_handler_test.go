package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogapp "github.com/datamark/backend/internal/application/catalog"
	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, storeID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActiveByIDs(ctx context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, storeID, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, storeID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, storeID, sku)
	return args.Bool(0), args.Error(1)
}

func setupProductHandler(productRepo *MockProductRepository) *ProductHandler {
	return NewProductHandler(catalogapp.NewProductService(productRepo))
}

func createTestProduct(storeID uuid.UUID) *catalog.Product {
	product, _ := catalog.NewProduct(storeID, "Espresso Beans", "Coffee")
	_ = product.SetSKU("COF-001")
	_ = product.SetPricing(decimal.NewFromFloat(18.50), decimal.NewFromFloat(9.20))
	_ = product.SetStock(40)
	return product
}

func TestProductHandler_Create_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	productRepo.On("ExistsBySKU", mock.Anything, storeID, "COF-001").Return(false, nil)
	productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	reqBody := catalogapp.CreateProductRequest{
		Name:     "Espresso Beans",
		Category: "Coffee",
		SKU:      "COF-001",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_DuplicateSKU(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	productRepo.On("ExistsBySKU", mock.Anything, storeID, "COF-001").Return(true, nil)

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	reqBody := catalogapp.CreateProductRequest{
		Name:     "Espresso Beans",
		Category: "Coffee",
		SKU:      "COF-001",
	}
	body, _ := json.Marshal(reqBody)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Create_InvalidJSON(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Create_MissingName(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.POST("/products", handler.Create)

	body, _ := json.Marshal(map[string]string{"category": "Coffee"})

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Get_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)

	productRepo.On("FindByIDForStore", mock.Anything, storeID, product.ID).Return(product, nil)

	router := setupTestRouter()
	router.GET("/products/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	productID := uuid.New()

	productRepo.On("FindByIDForStore", mock.Anything, storeID, productID).Return(nil, shared.ErrNotFound)

	router := setupTestRouter()
	router.GET("/products/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/products/"+productID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Get_InvalidID(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	router := setupTestRouter()
	router.GET("/products/:id", handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/products/not-a-uuid", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)

	productRepo.On("FindAllForStore", mock.Anything, storeID, mock.AnythingOfType("shared.Filter")).
		Return([]catalog.Product{*product}, nil)
	productRepo.On("CountForStore", mock.Anything, storeID, mock.AnythingOfType("shared.Filter")).
		Return(int64(1), nil)

	router := setupTestRouter()
	router.GET("/products", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/products?page=1&page_size=20", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Deactivate_Success(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)

	productRepo.On("FindByIDForStore", mock.Anything, storeID, product.ID).Return(product, nil)
	productRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	router := setupTestRouter()
	router.DELETE("/products/:id", handler.Deactivate)

	req := httptest.NewRequest(http.MethodDelete, "/products/"+product.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	productRepo.AssertExpectations(t)
}

func TestProductHandler_Unauthenticated(t *testing.T) {
	productRepo := new(MockProductRepository)
	handler := setupProductHandler(productRepo)

	// No JWT context middleware on this router
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", handler.List)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
