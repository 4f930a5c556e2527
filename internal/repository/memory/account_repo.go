package memory

import (
	"bank_ledger/internal/domain"
	"bank_ledger/internal/repository"
	"context"
	"fmt"
	"sync"
)

type AccountRepository struct {
	mu          sync.RWMutex
	accounts    map[string]*domain.Account
	order       []string
	clientIndex map[string][]string
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts:    make(map[string]*domain.Account),
		clientIndex: make(map[string][]string),
	}
}

func (r *AccountRepository) Save(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := account.Key()
	if _, exists := r.accounts[key]; exists {
		return fmt.Errorf("%w: %s", repository.ErrDuplicateAccountKey, key)
	}

	r.accounts[key] = account
	r.order = append(r.order, key)

	taxID := account.Owner().TaxID
	r.clientIndex[taxID] = append(r.clientIndex[taxID], key)

	return nil
}

func (r *AccountRepository) GetByKey(ctx context.Context, branch, number string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, exists := r.accounts[branch+"/"+number]
	if !exists {
		return nil, fmt.Errorf("%w: branch %s number %s", repository.ErrAccountNotFound, branch, number)
	}
	return account, nil
}

// GetByNumber returns the first account opened with the given number,
// whatever its branch.
func (r *AccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		if account := r.accounts[key]; account.Number() == number {
			return account, nil
		}
	}
	return nil, fmt.Errorf("%w: number %s", repository.ErrAccountNotFound, number)
}

// ListByClient returns an empty slice for clients without accounts.
func (r *AccountRepository) ListByClient(ctx context.Context, taxID string) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.clientIndex[taxID]
	result := make([]*domain.Account, 0, len(keys))
	for _, key := range keys {
		result = append(result, r.accounts[key])
	}
	return result, nil
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Account, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.accounts[key])
	}
	return result, nil
}
