package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HistoryEntry struct {
	ID        uuid.UUID       `json:"id"`
	Kind      TransactionKind `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

// History is the append-only journal of the transactions that succeeded on
// one account, in the order they succeeded.
type History struct {
	entries []HistoryEntry
	now     func() time.Time
}

func NewHistory() *History {
	return &History{now: time.Now}
}

func (h *History) Record(id uuid.UUID, kind TransactionKind, amount decimal.Decimal) {
	h.entries = append(h.entries, HistoryEntry{
		ID:        id,
		Kind:      kind,
		Amount:    amount,
		Timestamp: h.now(),
	})
}

// Entries returns a copy; mutating it does not affect the journal.
func (h *History) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Count(kind TransactionKind) int {
	var n int
	for _, e := range h.entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
