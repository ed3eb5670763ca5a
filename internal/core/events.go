package core

import "time"

// EventType names a ledger or goal mutation.
type EventType string

const (
	EventTransactionAdded   EventType = "transaction.added"
	EventTransactionRemoved EventType = "transaction.removed"
	EventGoalAdded          EventType = "goal.added"
	EventGoalRemoved        EventType = "goal.removed"
)

// LedgerEvent is emitted after every successful mutation so that views can
// refresh. Category is empty for income goals. amqp.LedgerMessage is its
// wire form.
type LedgerEvent struct {
	Type        EventType
	ID          string
	Kind        Kind
	Category    string
	AmountCents int64
	Timestamp   time.Time
}

func TransactionEvent(t EventType, tx Transaction, at time.Time) LedgerEvent {
	return LedgerEvent{
		Type:        t,
		ID:          tx.ID,
		Kind:        tx.Kind,
		Category:    tx.Category,
		AmountCents: tx.Amount.Cents,
		Timestamp:   at.UTC(),
	}
}

func GoalEvent(t EventType, g Goal, at time.Time) LedgerEvent {
	return LedgerEvent{
		Type:        t,
		ID:          g.ID,
		Kind:        g.Kind,
		Category:    g.Category,
		AmountCents: g.Amount.Cents,
		Timestamp:   at.UTC(),
	}
}
