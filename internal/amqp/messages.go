package amqp

import (
	"encoding/json"
	"time"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

// LedgerEventMessage carries one wallet mutation to the archive worker.
// It holds the full transaction so the worker never has to reach back into
// the wallet's own store.
type LedgerEventMessage struct {
	TransactionID string    `json:"transaction_id"`
	Kind          string    `json:"kind"`
	Title         string    `json:"title"`
	AmountCents   int64     `json:"amount_cents"`
	Category      string    `json:"category,omitempty"`
	Date          string    `json:"date"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewLedgerEventMessage builds an event from a transaction log entry.
func NewLedgerEventMessage(tx core.Transaction) *LedgerEventMessage {
	return &LedgerEventMessage{
		TransactionID: tx.ID,
		Kind:          string(tx.Kind),
		Title:         tx.Title,
		AmountCents:   tx.Amount.Cents,
		Category:      string(tx.Category),
		Date:          core.EncodeDate(tx.Date),
		Timestamp:     time.Now(),
	}
}

// Transaction converts the message back into a domain transaction.
func (m *LedgerEventMessage) Transaction() core.Transaction {
	return core.Transaction{
		ID:       m.TransactionID,
		Kind:     core.TransactionKind(m.Kind),
		Title:    m.Title,
		Amount:   core.Money{Cents: m.AmountCents},
		Category: core.Category(m.Category),
		Date:     core.DecodeDate(m.Date),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventMessageFromJSON creates a message from JSON bytes.
func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
