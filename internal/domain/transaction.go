package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindCredit TransactionKind = "credit"
	KindDebit  TransactionKind = "debit"
)

func (k TransactionKind) Valid() bool {
	return k == KindCredit || k == KindDebit
}

// Transaction is a single credit or debit of a fixed amount. Its amount and
// kind cannot change after construction, and it can be applied only once.
type Transaction struct {
	id      uuid.UUID
	kind    TransactionKind
	amount  decimal.Decimal
	applied bool
}

func NewTransaction(kind TransactionKind, amount decimal.Decimal) *Transaction {
	return &Transaction{
		id:     uuid.New(),
		kind:   kind,
		amount: amount,
	}
}

func NewCredit(amount decimal.Decimal) *Transaction {
	return NewTransaction(KindCredit, amount)
}

func NewDebit(amount decimal.Decimal) *Transaction {
	return NewTransaction(KindDebit, amount)
}

func (tx *Transaction) ID() uuid.UUID           { return tx.id }
func (tx *Transaction) Kind() TransactionKind   { return tx.kind }
func (tx *Transaction) Amount() decimal.Decimal { return tx.amount }
func (tx *Transaction) Applied() bool           { return tx.applied }

// Register runs the account primitive matching the transaction kind and
// journals the transaction only when that primitive succeeds. A failed
// primitive leaves balance and history untouched.
func (tx *Transaction) Register(account *Account) error {
	if tx.applied {
		return fmt.Errorf("%w: %s", ErrTransactionReused, tx.id)
	}
	tx.applied = true

	var err error
	switch tx.kind {
	case KindCredit:
		err = account.Credit(tx.amount)
	case KindDebit:
		err = account.Debit(tx.amount)
	default:
		return fmt.Errorf("unknown transaction kind: %s", tx.kind)
	}
	if err != nil {
		return err
	}

	account.history.Record(tx.id, tx.kind, tx.amount)
	return nil
}
