package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

func TestRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, found, err := s.Load(ctx); err != nil || found {
		t.Fatalf("empty store: found=%v err=%v", found, err)
	}

	snap := core.Snapshot{InitialBalance: 10000, Balance: 9000, TotalIncome: 0,
		Expenses: []core.SnapshotExpense{{ID: "e1", Title: "x", Cents: 1000, Category: "Food", Date: "2025-03-01"}}}
	if err := s.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, found, err := s.Load(ctx)
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if got.Balance != 9000 || len(got.Expenses) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestCorruptTreatedAsAbsent(t *testing.T) {
	s := New()
	s.Corrupt()

	_, found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("corrupt data must not error: %v", err)
	}
	if found {
		t.Fatalf("corrupt data must read as absent")
	}
}

func TestFailSaves(t *testing.T) {
	s := New()
	s.FailSaves = errors.New("disk full")

	if err := s.Save(context.Background(), core.Snapshot{}); err == nil {
		t.Fatalf("expected injected save failure")
	}
	if _, found, _ := s.Load(context.Background()); found {
		t.Fatalf("failed save must not persist anything")
	}
}
