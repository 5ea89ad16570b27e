package partner

import (
	"context"

	"github.com/datamark/backend/internal/domain/partner"
	"github.com/datamark/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientService handles the contact-book operations
type ClientService struct {
	clientRepo partner.ClientRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// Create adds a contact entry
func (s *ClientService) Create(ctx context.Context, storeID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(storeID, req.Name, req.Email, req.Phone, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	resp := ToClientResponse(client)
	return &resp, nil
}

// List returns contact entries for a store, newest first
func (s *ClientService) List(ctx context.Context, storeID uuid.UUID, filter ClientListFilter) (*shared.Paginated[ClientResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search

	clients, err := s.clientRepo.FindAllForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	total, err := s.clientRepo.CountForStore(ctx, storeID, f)
	if err != nil {
		return nil, err
	}

	items := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, ToClientResponse(&clients[i]))
	}

	result := shared.NewPaginated(items, total, f.Page, f.PageSize)
	return &result, nil
}
