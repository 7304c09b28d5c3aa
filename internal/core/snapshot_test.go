package core

import (
	"errors"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	in := Snapshot{
		InitialBalance: 7500000,
		Balance:        7498000,
		TotalIncome:    500000,
		Expenses: []SnapshotExpense{
			{ID: "e1", Title: "groceries", Cents: 2000, Category: "Food", Date: "2025-03-01"},
		},
		Transactions: []SnapshotTransaction{
			{ID: "t1", Kind: "income", Title: "salary", Cents: 500000, Date: "2025-03-01"},
		},
	}

	data, err := EncodeSnapshot(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.SchemaVersion != SnapshotSchemaVersion {
		t.Fatalf("expected schema version %d, got %d", SnapshotSchemaVersion, out.SchemaVersion)
	}
	if out.Balance != in.Balance || out.TotalIncome != in.TotalIncome || out.InitialBalance != in.InitialBalance {
		t.Fatalf("totals changed in round trip: %+v", out)
	}
	if len(out.Expenses) != 1 || out.Expenses[0] != in.Expenses[0] {
		t.Fatalf("expenses changed in round trip: %+v", out.Expenses)
	}
	if len(out.Transactions) != 1 || out.Transactions[0] != in.Transactions[0] {
		t.Fatalf("transactions changed in round trip: %+v", out.Transactions)
	}
	if out.SavedAtUnixMilli == 0 {
		t.Fatalf("expected save timestamp to be stamped")
	}
}

func TestDecodeSnapshotCorrupt(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("{not json")); err == nil {
		t.Fatalf("expected error for corrupt data")
	}
}

func TestDateWireFormat(t *testing.T) {
	d := NewDate(2025, 3, 9)
	if got := EncodeDate(d); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %q", got)
	}
	if got := DecodeDate("2025-03-09"); !got.Equal(d.Time) {
		t.Fatalf("decode mismatch: %v", got)
	}
	if got := DecodeDate("not-a-date"); !got.IsZero() {
		t.Fatalf("expected zero date for malformed input, got %v", got)
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-03-09"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if _, err := ParseDate("09/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}
