package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type AccountType string

const (
	AccountBasic    AccountType = "basic"
	AccountChecking AccountType = "checking"
)

// Account keeps a non-negative balance and the history of the transactions
// applied to it. Debit restrictions come from its DebitPolicy.
type Account struct {
	branch      string
	number      string
	owner       *Client
	balance     decimal.Decimal
	history     *History
	policy      DebitPolicy
	debitsToday int
	openedAt    time.Time
}

func NewAccount(branch, number string, owner *Client) (*Account, error) {
	return NewCheckingAccount(branch, number, owner, DebitPolicy{})
}

func NewCheckingAccount(branch, number string, owner *Client, policy DebitPolicy) (*Account, error) {
	if owner == nil {
		return nil, ErrNoOwner
	}
	return &Account{
		branch:   branch,
		number:   number,
		owner:    owner,
		balance:  decimal.Zero,
		history:  NewHistory(),
		policy:   policy,
		openedAt: time.Now(),
	}, nil
}

func (a *Account) Branch() string           { return a.branch }
func (a *Account) Number() string           { return a.number }
func (a *Account) Owner() *Client           { return a.owner }
func (a *Account) Balance() decimal.Decimal { return a.balance }
func (a *Account) Policy() DebitPolicy      { return a.policy }
func (a *Account) DebitsToday() int         { return a.debitsToday }
func (a *Account) OpenedAt() time.Time      { return a.openedAt }

func (a *Account) Type() AccountType {
	if a.policy.IsZero() {
		return AccountBasic
	}
	return AccountChecking
}

// History returns a copy of the journal, oldest entry first.
func (a *Account) History() []HistoryEntry {
	return a.history.Entries()
}

func (a *Account) HistoryLen() int {
	return a.history.Len()
}

func (a *Account) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: credit of %s", ErrInvalidAmount, amount)
	}
	a.balance = a.balance.Add(amount)
	return nil
}

// Debit checks the policy limits before the base rules, so an exhausted
// daily count is reported even for amounts that would otherwise be invalid.
func (a *Account) Debit(amount decimal.Decimal) error {
	if err := a.policy.allows(amount, a.debitsToday); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: debit of %s", ErrInvalidAmount, amount)
	}
	if amount.GreaterThan(a.balance) {
		return fmt.Errorf("%w: balance %s, requested %s", ErrInsufficientFunds, a.balance, amount)
	}
	a.balance = a.balance.Sub(amount)
	a.debitsToday++
	return nil
}

// StartNewDay resets the daily debit counter. History is not affected.
func (a *Account) StartNewDay() {
	a.debitsToday = 0
}

func (a *Account) Key() string {
	return a.branch + "/" + a.number
}
