package services

import (
	"context"
	"errors"
	"testing"

	"github.com/deepmavani/XpenseTracer/internal/amqp"
	"github.com/deepmavani/XpenseTracer/internal/core"
	"github.com/deepmavani/XpenseTracer/internal/store/memory"
)

type fakePublisher struct {
	published []*amqp.LedgerEventMessage
	err       error
}

func (f *fakePublisher) PublishLedgerEvent(_ context.Context, msg *amqp.LedgerEventMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func newTestService(t *testing.T) (*WalletService, *memory.Store, *fakePublisher) {
	t.Helper()
	st := memory.New()
	pub := &fakePublisher{}
	svc, err := NewWalletService(context.Background(), st, pub, core.Money{Cents: 7500000})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, st, pub
}

func TestFreshWalletStartsAtInitialBalance(t *testing.T) {
	svc, _, _ := newTestService(t)
	if got := svc.Ledger().Balance().Cents; got != 7500000 {
		t.Fatalf("expected 7500000, got %d", got)
	}
}

func TestAddIncomeParsesAndPublishes(t *testing.T) {
	svc, st, pub := newTestService(t)
	ctx := context.Background()

	tx, err := svc.AddIncome(ctx, "5000", "salary")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if tx.Amount.Cents != 500000 {
		t.Fatalf("expected 500000 cents, got %d", tx.Amount.Cents)
	}
	if got := svc.Ledger().Balance().Cents; got != 8000000 {
		t.Fatalf("expected 8000000, got %d", got)
	}

	// The mutation was persisted and published.
	snap, found, err := st.Load(ctx)
	if err != nil || !found {
		t.Fatalf("snapshot not saved: found=%v err=%v", found, err)
	}
	if snap.Balance != 8000000 {
		t.Fatalf("persisted balance %d", snap.Balance)
	}
	if len(pub.published) != 1 || pub.published[0].Kind != string(core.KindIncome) {
		t.Fatalf("unexpected events: %+v", pub.published)
	}

	if _, err := svc.AddIncome(ctx, "nonsense", ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestAddExpenseParsesInput(t *testing.T) {
	svc, _, pub := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddExpense(ctx, ExpenseInput{
		Title:    "groceries",
		Amount:   "200",
		Category: "Food",
		Date:     "2025-03-01",
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if created.Amount.Cents != 20000 || created.Category != core.Food {
		t.Fatalf("unexpected expense: %+v", created)
	}
	if got := svc.Ledger().Balance().Cents; got != 7480000 {
		t.Fatalf("expected 7480000, got %d", got)
	}
	if len(pub.published) != 1 || pub.published[0].Kind != string(core.KindExpense) {
		t.Fatalf("unexpected events: %+v", pub.published)
	}

	cases := []ExpenseInput{
		{Title: "bad amount", Amount: "abc", Category: "Food"},
		{Title: "bad category", Amount: "10", Category: "Stocks"},
		{Title: "bad date", Amount: "10", Category: "Food", Date: "01/03/2025"},
		{Title: "overdraw", Amount: "999999", Category: "Food"},
	}
	for i, in := range cases {
		if _, err := svc.AddExpense(ctx, in); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
	if got := svc.Ledger().Balance().Cents; got != 7480000 {
		t.Fatalf("rejected inputs changed balance: %d", got)
	}
}

func TestAddExpenseDefaultsDateToToday(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.AddExpense(context.Background(), ExpenseInput{
		Title: "coffee", Amount: "3.50", Category: "Food",
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if core.EncodeDate(created.Date) != core.EncodeDate(core.Today()) {
		t.Fatalf("expected today's date, got %v", created.Date)
	}
}

func TestUpdateAndDeleteExpense(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddExpense(ctx, ExpenseInput{Title: "dinner", Amount: "50", Category: "Food"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Empty patch fields keep current values.
	updated, err := svc.UpdateExpense(ctx, created.ID, ExpensePatchInput{Amount: "80"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 8000 || updated.Title != "dinner" || updated.Category != core.Food {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.UpdateExpense(ctx, "missing", ExpensePatchInput{Title: "x"}); !core.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}

	removed, err := svc.DeleteExpense(ctx, created.ID)
	if err != nil || removed.ID != created.ID {
		t.Fatalf("delete: %+v, %v", removed, err)
	}
	if got := svc.Ledger().Balance().Cents; got != 7500000 {
		t.Fatalf("expected refund to initial balance, got %d", got)
	}
	if _, err := svc.DeleteExpense(ctx, created.ID); !core.IsNotFound(err) {
		t.Fatalf("expected not-found on double delete, got %v", err)
	}
}

func TestPersistenceFailureDoesNotFailOperation(t *testing.T) {
	svc, st, _ := newTestService(t)
	st.FailSaves = errors.New("disk full")

	if _, err := svc.AddIncome(context.Background(), "100", "tip"); err != nil {
		t.Fatalf("save failure must not fail the operation: %v", err)
	}
	if got := svc.Ledger().Balance().Cents; got != 7510000 {
		t.Fatalf("in-memory state must advance, got %d", got)
	}
}

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	st := memory.New()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, err := NewWalletService(context.Background(), st, pub, core.Money{Cents: 10000})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.AddIncome(context.Background(), "1", ""); err != nil {
		t.Fatalf("publish failure must not fail the operation: %v", err)
	}
}

func TestServiceRestoresFromSnapshot(t *testing.T) {
	st := memory.New()
	ctx := context.Background()

	first, err := NewWalletService(ctx, st, nil, core.Money{Cents: 7500000})
	if err != nil {
		t.Fatalf("first service: %v", err)
	}
	if _, err := first.AddExpense(ctx, ExpenseInput{Title: "rent", Amount: "1000", Category: "Other"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	second, err := NewWalletService(ctx, st, nil, core.Money{Cents: 7500000})
	if err != nil {
		t.Fatalf("second service: %v", err)
	}
	if got := second.Ledger().Balance().Cents; got != 7400000 {
		t.Fatalf("expected restored balance 7400000, got %d", got)
	}
	if got := len(second.Ledger().Expenses()); got != 1 {
		t.Fatalf("expected 1 restored expense, got %d", got)
	}
}

func TestServiceStartsFreshOnCorruptSnapshot(t *testing.T) {
	st := memory.New()
	st.Corrupt()

	svc, err := NewWalletService(context.Background(), st, nil, core.Money{Cents: 4200})
	if err != nil {
		t.Fatalf("corrupt snapshot must not fail startup: %v", err)
	}
	if got := svc.Ledger().Balance().Cents; got != 4200 {
		t.Fatalf("expected fresh wallet at 4200, got %d", got)
	}
}
