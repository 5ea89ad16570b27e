package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	salesapp "github.com/datamark/backend/internal/application/sales"
	"github.com/datamark/backend/internal/domain/catalog"
	"github.com/datamark/backend/internal/domain/partner"
	domainsales "github.com/datamark/backend/internal/domain/sales"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/datamark/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository implements partner.AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Account, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]partner.Account, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]partner.Account), args.Error(1)
}

func (m *MockAccountRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *partner.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

// MockSaleRepository implements sales.SaleRepository for testing
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*domainsales.Sale, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domainsales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]domainsales.Sale, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]domainsales.Sale), args.Error(1)
}

func (m *MockSaleRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *domainsales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

// MockStockDecrementer implements sales.StockDecrementer for testing
type MockStockDecrementer struct {
	mock.Mock
}

func (m *MockStockDecrementer) DecrementStock(ctx context.Context, storeID, productID uuid.UUID, quantity int) (bool, error) {
	args := m.Called(ctx, storeID, productID, quantity)
	return args.Bool(0), args.Error(1)
}

func (m *MockStockDecrementer) AvailableStock(ctx context.Context, storeID, productID uuid.UUID) (int, error) {
	args := m.Called(ctx, storeID, productID)
	return args.Int(0), args.Error(1)
}

// stubTransactionScope runs the commit function directly against the
// given mocks, standing in for a real database transaction.
type stubTransactionScope struct {
	sales *MockSaleRepository
	stock *MockStockDecrementer
}

func (s *stubTransactionScope) Execute(ctx context.Context, fn func(repos salesapp.TransactionalRepositories) error) error {
	return fn(s)
}

func (s *stubTransactionScope) Sales() domainsales.SaleRepository {
	return s.sales
}

func (s *stubTransactionScope) Stock() domainsales.StockDecrementer {
	return s.stock
}

type saleHandlerFixture struct {
	productRepo *MockProductRepository
	accountRepo *MockAccountRepository
	saleRepo    *MockSaleRepository
	stock       *MockStockDecrementer
	handler     *SaleHandler
}

func setupSaleHandler() *saleHandlerFixture {
	f := &saleHandlerFixture{
		productRepo: new(MockProductRepository),
		accountRepo: new(MockAccountRepository),
		saleRepo:    new(MockSaleRepository),
		stock:       new(MockStockDecrementer),
	}
	txScope := &stubTransactionScope{sales: f.saleRepo, stock: f.stock}
	service := salesapp.NewSaleService(f.productRepo, f.accountRepo, f.saleRepo, txScope, nil)
	f.handler = NewSaleHandler(service)
	return f
}

func postSale(router http.Handler, req salesapp.CreateSaleRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewBuffer(body))
	httpReq.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httpReq)
	return w
}

func TestSaleHandler_Create_Success(t *testing.T) {
	f := setupSaleHandler()

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)

	f.productRepo.On("FindActiveByIDs", mock.Anything, storeID, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	f.saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)
	f.stock.On("DecrementStock", mock.Anything, storeID, product.ID, 2).Return(true, nil)

	router := setupTestRouter()
	router.POST("/sales", f.handler.Create)

	w := postSale(router, salesapp.CreateSaleRequest{
		Items: []salesapp.SaleLineRequest{{ProductID: product.ID, Quantity: 2}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	f.productRepo.AssertExpectations(t)
	f.saleRepo.AssertExpectations(t)
	f.stock.AssertExpectations(t)
}

func TestSaleHandler_Create_InsufficientStock(t *testing.T) {
	f := setupSaleHandler()

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)
	require.NoError(t, product.SetStock(1))

	f.productRepo.On("FindActiveByIDs", mock.Anything, storeID, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)

	router := setupTestRouter()
	router.POST("/sales", f.handler.Create)

	w := postSale(router, salesapp.CreateSaleRequest{
		Items: []salesapp.SaleLineRequest{{ProductID: product.ID, Quantity: 5}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, product.ID.String(), details["product_id"])
	assert.Equal(t, float64(1), details["available"])
	assert.Equal(t, float64(5), details["requested"])

	// Nothing was committed
	f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.stock.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSaleHandler_Create_ConcurrentShortage(t *testing.T) {
	f := setupSaleHandler()

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)

	f.productRepo.On("FindActiveByIDs", mock.Anything, storeID, []uuid.UUID{product.ID}).
		Return([]catalog.Product{*product}, nil)
	f.saleRepo.On("Save", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)
	// The guard fails inside the transaction: someone else got there first
	f.stock.On("DecrementStock", mock.Anything, storeID, product.ID, 2).Return(false, nil)
	f.stock.On("AvailableStock", mock.Anything, storeID, product.ID).Return(1, nil)

	router := setupTestRouter()
	router.POST("/sales", f.handler.Create)

	w := postSale(router, salesapp.CreateSaleRequest{
		Items: []salesapp.SaleLineRequest{{ProductID: product.ID, Quantity: 2}},
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	f.stock.AssertExpectations(t)
}

func TestSaleHandler_Create_UnknownProduct(t *testing.T) {
	f := setupSaleHandler()

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	productID := uuid.New()

	f.productRepo.On("FindActiveByIDs", mock.Anything, storeID, []uuid.UUID{productID}).
		Return([]catalog.Product{}, nil)

	router := setupTestRouter()
	router.POST("/sales", f.handler.Create)

	w := postSale(router, salesapp.CreateSaleRequest{
		Items: []salesapp.SaleLineRequest{{ProductID: productID, Quantity: 1}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	f.saleRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSaleHandler_Create_EmptyCart(t *testing.T) {
	f := setupSaleHandler()

	router := setupTestRouter()
	router.POST("/sales", f.handler.Create)

	w := postSale(router, salesapp.CreateSaleRequest{Items: []salesapp.SaleLineRequest{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_Get_Success(t *testing.T) {
	f := setupSaleHandler()

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	product := createTestProduct(storeID)
	item, err := domainsales.NewSaleItem(uuid.Nil, product.ID, product.Name, 2, product.Price)
	require.NoError(t, err)
	sale, err := domainsales.NewSale(storeID, uuid.New(), nil, []domainsales.SaleItem{*item})
	require.NoError(t, err)

	f.saleRepo.On("FindByIDForStore", mock.Anything, storeID, sale.ID).Return(sale, nil)

	router := setupTestRouter()
	router.GET("/sales/:id", f.handler.Get)

	req := httptest.NewRequest(http.MethodGet, "/sales/"+sale.ID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	f.saleRepo.AssertExpectations(t)
}

func TestSaleHandler_List_Success(t *testing.T) {
	f := setupSaleHandler()

	storeID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	f.saleRepo.On("FindAllForStore", mock.Anything, storeID, mock.AnythingOfType("shared.Filter")).
		Return([]domainsales.Sale{}, nil)
	f.saleRepo.On("CountForStore", mock.Anything, storeID, mock.AnythingOfType("shared.Filter")).
		Return(int64(0), nil)

	router := setupTestRouter()
	router.GET("/sales", f.handler.List)

	req := httptest.NewRequest(http.MethodGet, "/sales", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Meta)
	f.saleRepo.AssertExpectations(t)
}
