// Package ledger holds the in-memory stores the budget engine reads from:
// the ordered transaction ledger and the set of monthly goals.
package ledger

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"orcamento/internal/core"
)

// Clock returns the current time. Tests replace it to pin default dates.
type Clock func() time.Time

type Ledger struct {
	mu      sync.Mutex
	catalog core.Catalog
	now     Clock
	items   []core.Transaction
}

func New(catalog core.Catalog, now Clock) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{catalog: catalog, now: now}
}

// AddTransaction validates the input and appends it with a fresh id.
// Nothing is stored when validation fails.
func (l *Ledger) AddTransaction(in core.NewTransaction) (core.Transaction, error) {
	if err := in.Validate(l.catalog); err != nil {
		return core.Transaction{}, err
	}
	date := in.Date
	if date.IsZero() {
		date = core.DateOf(l.now())
	} else {
		date = core.DateOf(date.Time)
	}
	tx := core.Transaction{
		ID:          uuid.NewString(),
		Kind:        in.Kind,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Date:        date,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, tx)
	return tx, nil
}

// RemoveTransaction deletes the transaction with the given id and returns it.
func (l *Ledger) RemoveTransaction(id string) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, tx := range l.items {
		if tx.ID == id {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %q: %w", id, core.ErrNotFound)
}

// ListTransactions returns a snapshot in insertion order.
func (l *Ledger) ListTransactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.Transaction(nil), l.items...)
}

// Recent returns the last n transactions, most recently inserted first.
// n <= 0 returns all of them.
func (l *Ledger) Recent(n int) []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Newest(l.items, n)
}

// Newest returns the last n entries of txs in reverse order as a new slice.
// n <= 0 returns all of them.
func Newest(txs []core.Transaction, n int) []core.Transaction {
	if n <= 0 || n > len(txs) {
		n = len(txs)
	}
	out := make([]core.Transaction, 0, n)
	for i := len(txs) - 1; i >= len(txs)-n; i-- {
		out = append(out, txs[i])
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Catalog returns the category catalog used for validation.
func (l *Ledger) Catalog() core.Catalog {
	return l.catalog
}
