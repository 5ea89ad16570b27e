package partner

import (
	"context"
	"testing"

	"github.com/datamark/backend/internal/domain/partner"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of AccountRepository
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

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func TestAccountServiceCreate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("creates B2B account with credit limit", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		repo.On("Save", ctx, mock.AnythingOfType("*partner.Account")).Return(nil)

		limit := decimal.NewFromInt(5000)
		resp, err := service.Create(ctx, storeID, CreateAccountRequest{
			Type:        "B2B",
			CompanyName: "Acme Distribution SA",
			TaxID:       "B-12345678",
			Email:       "orders@acme.example",
			CreditLimit: &limit,
		})

		require.NoError(t, err)
		assert.Equal(t, "B2B", resp.Type)
		assert.Equal(t, "Acme Distribution SA", resp.DisplayName)
		assert.True(t, resp.CreditLimit.Equal(limit))
		repo.AssertExpectations(t)
	})

	t.Run("rejects B2C account without a full name", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		_, err := service.Create(ctx, storeID, CreateAccountRequest{Type: "B2C"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Full name is required")
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestAccountServiceUpdate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockAccountRepository)
	service := NewAccountService(repo)

	account, err := partner.NewAccount(storeID, partner.AccountTypeB2C, "Maria Lopez", "")
	require.NoError(t, err)

	repo.On("FindByIDForStore", ctx, storeID, account.ID).Return(account, nil)
	repo.On("Save", ctx, account).Return(nil)

	phone := "555-0102"
	resp, err := service.Update(ctx, storeID, account.ID, UpdateAccountRequest{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-0102", resp.Phone)
	assert.Equal(t, "Maria Lopez", resp.FullName)
}

func TestAccountServiceDelete(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("deletes existing account", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		account, err := partner.NewAccount(storeID, partner.AccountTypeB2C, "Maria Lopez", "")
		require.NoError(t, err)

		repo.On("FindByIDForStore", ctx, storeID, account.ID).Return(account, nil)
		repo.On("DeleteForStore", ctx, storeID, account.ID).Return(nil)

		require.NoError(t, service.Delete(ctx, storeID, account.ID))
		repo.AssertExpectations(t)
	})

	t.Run("missing account is reported", func(t *testing.T) {
		repo := new(MockAccountRepository)
		service := NewAccountService(repo)

		id := uuid.New()
		repo.On("FindByIDForStore", ctx, storeID, id).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, storeID, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestClientServiceCreate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockClientRepository)
	service := NewClientService(repo)

	repo.On("Save", ctx, mock.AnythingOfType("*partner.Client")).Return(nil)

	resp, err := service.Create(ctx, storeID, CreateClientRequest{
		Name:  "  Juan Perez ",
		Email: " Juan@Mail.com ",
		Phone: " 555-0101 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", resp.Name)
	assert.Equal(t, "juan@mail.com", resp.Email)
	repo.AssertExpectations(t)
}
