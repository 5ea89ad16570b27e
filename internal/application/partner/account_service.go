package partner

import (
	"context"

	"github.com/datamark/backend/internal/domain/partner"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountService handles customer account operations
type AccountService struct {
	accountRepo partner.AccountRepository
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo partner.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// Create creates a new customer account
func (s *AccountService) Create(ctx context.Context, storeID uuid.UUID, req CreateAccountRequest) (*AccountResponse, error) {
	account, err := partner.NewAccount(storeID, partner.AccountType(req.Type), req.FullName, req.CompanyName)
	if err != nil {
		return nil, err
	}

	if err := account.UpdateContact(req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if req.TaxID != "" {
		if err := account.SetTaxID(req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil {
		if err := account.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Get returns an account by ID within the store
func (s *AccountService) Get(ctx context.Context, storeID, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// List returns accounts for a store, newest first
func (s *AccountService) List(ctx context.Context, storeID uuid.UUID, filter AccountListFilter) (*shared.Paginated[AccountResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}

	accounts, err := s.accountRepo.FindAllForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	total, err := s.accountRepo.CountForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	items := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, ToAccountResponse(&accounts[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}

// Update applies a partial update to an account
func (s *AccountService) Update(ctx context.Context, storeID, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByIDForStore(ctx, storeID, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil || req.CompanyName != nil {
		fullName := account.FullName
		companyName := account.CompanyName
		if req.FullName != nil {
			fullName = *req.FullName
		}
		if req.CompanyName != nil {
			companyName = *req.CompanyName
		}
		if err := account.Rename(fullName, companyName); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil || req.Address != nil {
		email := account.Email
		phone := account.Phone
		address := account.Address
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Address != nil {
			address = *req.Address
		}
		if err := account.UpdateContact(email, phone, address); err != nil {
			return nil, err
		}
	}

	if req.TaxID != nil {
		if err := account.SetTaxID(*req.TaxID); err != nil {
			return nil, err
		}
	}
	if req.CreditLimit != nil {
		if err := account.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil && !*req.IsActive {
		account.Deactivate()
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	resp := ToAccountResponse(account)
	return &resp, nil
}

// Delete removes an account from the store
func (s *AccountService) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	if _, err := s.accountRepo.FindByIDForStore(ctx, storeID, id); err != nil {
		return err
	}
	return s.accountRepo.DeleteForStore(ctx, storeID, id)
}
