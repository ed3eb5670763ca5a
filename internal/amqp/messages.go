package amqp

import (
	"encoding/json"
	"time"

	"orcamento/internal/core"
)

// LedgerMessage is the wire form of a ledger event. It carries enough for
// consumers to refresh their views without querying back.
type LedgerMessage struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

func NewLedgerMessage(evt core.LedgerEvent) *LedgerMessage {
	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return &LedgerMessage{
		Type:        string(evt.Type),
		ID:          evt.ID,
		Kind:        string(evt.Kind),
		Category:    evt.Category,
		AmountCents: evt.AmountCents,
		Timestamp:   ts,
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerMessageFromJSON decodes a message body.
func LedgerMessageFromJSON(data []byte) (*LedgerMessage, error) {
	var msg LedgerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
