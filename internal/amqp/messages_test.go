package amqp

import (
	"testing"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

func TestLedgerEventMessageRoundTrip(t *testing.T) {
	tx := core.Transaction{
		ID:       "tx-1",
		Kind:     core.KindExpense,
		Title:    "groceries",
		Amount:   core.Money{Cents: 20000},
		Category: core.Food,
		Date:     core.NewDate(2025, 3, 1),
	}

	msg := NewLedgerEventMessage(tx)
	if msg.TransactionID != "tx-1" || msg.AmountCents != 20000 || msg.Date != "2025-03-01" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Fatalf("expected timestamp to be stamped")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := LedgerEventMessageFromJSON(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	back := decoded.Transaction()
	if back.ID != tx.ID || back.Kind != tx.Kind || back.Amount != tx.Amount || back.Category != tx.Category {
		t.Fatalf("transaction changed in round trip: %+v", back)
	}
	if core.EncodeDate(back.Date) != "2025-03-01" {
		t.Fatalf("date changed in round trip: %v", back.Date)
	}
}

func TestLedgerEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := LedgerEventMessageFromJSON([]byte("{broken")); err == nil {
		t.Fatalf("expected error for invalid payload")
	}
}
