package domain

import (
	"fmt"
	"time"
)

// Client is the owner of accounts and the party through which transactions
// reach them.
type Client struct {
	TaxID     string    `json:"tax_id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
	Address   string    `json:"address"`
	accounts  []*Account
}

func NewClient(taxID, name string, birthDate time.Time, address string) (*Client, error) {
	if taxID == "" {
		return nil, ErrEmptyTaxID
	}
	return &Client{
		TaxID:     taxID,
		Name:      name,
		BirthDate: birthDate,
		Address:   address,
	}, nil
}

// AddAccount appends without checking for duplicates.
func (c *Client) AddAccount(account *Account) {
	c.accounts = append(c.accounts, account)
}

func (c *Client) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

func (c *Client) Owns(account *Account) bool {
	return account != nil && account.owner == c
}

// ApplyTransaction refuses accounts owned by someone else before the
// transaction can touch them.
func (c *Client) ApplyTransaction(account *Account, tx *Transaction) error {
	if account == nil {
		return ErrAccountNotOwned
	}
	if !c.Owns(account) {
		return fmt.Errorf("%w: %s is not owned by %s", ErrAccountNotOwned, account.Key(), c.TaxID)
	}
	return tx.Register(account)
}
