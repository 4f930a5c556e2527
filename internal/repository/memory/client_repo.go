package memory

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
	"context"
	"fmt"
	"sync"
)

type ClientRepository struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client
	order   []string
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{
		clients: make(map[string]*domain.Client),
	}
}

func (r *ClientRepository) Save(ctx context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[client.TaxID]; exists {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateClient, client.TaxID)
	}

	r.clients[client.TaxID] = client
	r.order = append(r.order, client.TaxID)

	return nil
}

func (r *ClientRepository) GetByTaxID(ctx context.Context, taxID string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[taxID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repository.ErrClientNotFound, taxID)
	}
	return client, nil
}

// List returns clients in registration order.
func (r *ClientRepository) List(ctx context.Context) ([]*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Client, 0, len(r.order))
	for _, taxID := range r.order {
		result = append(result, r.clients[taxID])
	}
	return result, nil
}
