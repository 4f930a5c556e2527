package repository

import (
	"bank_ledger/internal/domain"
	"context"
	"errors"
)

// ClientRepository stores clients keyed by tax id.
type ClientRepository interface {
	Save(ctx context.Context, client *domain.Client) error
	GetByTaxID(ctx context.Context, taxID string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

// AccountRepository stores accounts keyed by the (branch, number) pair and
// remembers the order they were opened in.
type AccountRepository interface {
	Save(ctx context.Context, account *domain.Account) error
	GetByKey(ctx context.Context, branch, number string) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListByClient(ctx context.Context, taxID string) ([]*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrDuplicateClient     = errors.New("client already registered")
	ErrDuplicateAccountKey = errors.New("branch and account number already in use")
)
