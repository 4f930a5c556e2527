package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	DefaultCheckingDebitLimit  = 500
	DefaultCheckingDailyDebits = 3
)

// DebitPolicy holds the optional debit restrictions of an account. The zero
// value restricts nothing and describes a base account.
type DebitPolicy struct {
	MaxDebitAmount decimal.NullDecimal `json:"max_debit_amount"`
	// MaxDailyDebits caps successful debits between day boundaries; 0 disables the cap.
	MaxDailyDebits int `json:"max_daily_debits"`
}

func CheckingPolicy(maxDebitAmount decimal.Decimal, maxDailyDebits int) DebitPolicy {
	return DebitPolicy{
		MaxDebitAmount: decimal.NewNullDecimal(maxDebitAmount),
		MaxDailyDebits: maxDailyDebits,
	}
}

func DefaultCheckingPolicy() DebitPolicy {
	return CheckingPolicy(decimal.NewFromInt(DefaultCheckingDebitLimit), DefaultCheckingDailyDebits)
}

func (p DebitPolicy) IsZero() bool {
	return !p.MaxDebitAmount.Valid && p.MaxDailyDebits <= 0
}

func (p DebitPolicy) allows(amount decimal.Decimal, debitsToday int) error {
	if p.MaxDailyDebits > 0 && debitsToday >= p.MaxDailyDebits {
		return fmt.Errorf("%w: %d of %d", ErrDailyDebitCountExceeded, debitsToday, p.MaxDailyDebits)
	}
	if p.MaxDebitAmount.Valid && amount.GreaterThan(p.MaxDebitAmount.Decimal) {
		return fmt.Errorf("%w: %s over %s", ErrDebitLimitExceeded, amount, p.MaxDebitAmount.Decimal)
	}
	return nil
}
