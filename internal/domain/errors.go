package domain

import (
	"errors"
)

var (
	ErrInvalidAmount           = errors.New("amount must be greater than zero")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrDebitLimitExceeded      = errors.New("debit amount limit exceeded")
	ErrDailyDebitCountExceeded = errors.New("daily debit count limit reached")
	ErrAccountNotOwned         = errors.New("account does not belong to client")
	ErrTransactionReused       = errors.New("transaction already applied")
	ErrEmptyTaxID              = errors.New("tax id is required")
	ErrNoOwner                 = errors.New("account requires an owning client")
)

// ReasonCode maps the outcome of a domain operation to a stable code.
// A nil error is "ok"; errors outside the domain taxonomy are "error".
func ReasonCode(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrDebitLimitExceeded):
		return "debit_limit_exceeded"
	case errors.Is(err, ErrDailyDebitCountExceeded):
		return "daily_debit_count_exceeded"
	case errors.Is(err, ErrAccountNotOwned):
		return "account_not_owned"
	case errors.Is(err, ErrTransactionReused):
		return "transaction_reused"
	default:
		return "error"
	}
}
