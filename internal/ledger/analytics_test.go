package ledger

import (
	"testing"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

func seedLedger(t *testing.T, amounts map[string]int64, cat core.Category) *Ledger {
	t.Helper()
	l := New(money(10000000))
	for title, cents := range amounts {
		if _, err := l.AddExpense(expense(title, cents, cat)); err != nil {
			t.Fatalf("seed %s: %v", title, err)
		}
	}
	return l
}

func TestCategoryTotalsIncludesZeros(t *testing.T) {
	l := New(money(100000))
	if _, err := l.AddExpense(expense("lunch", 1500, core.Food)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := l.AddExpense(expense("dinner", 2500, core.Food)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	totals := l.CategoryTotals()
	if len(totals) != len(core.Categories()) {
		t.Fatalf("expected %d categories, got %d", len(core.Categories()), len(totals))
	}

	want := map[core.Category]int64{
		core.Food:          4000,
		core.Entertainment: 0,
		core.Travel:        0,
		core.Other:         0,
	}
	for i, ct := range totals {
		if ct.Category != core.Categories()[i] {
			t.Fatalf("position %d expected %s, got %s", i, core.Categories()[i], ct.Category)
		}
		if ct.Amount.Cents != want[ct.Category] {
			t.Fatalf("%s expected %d, got %d", ct.Category, want[ct.Category], ct.Amount.Cents)
		}
	}
}

func TestTopExpensesOrderAndTruncation(t *testing.T) {
	l := New(money(10000000))
	for _, tc := range []struct {
		title string
		cents int64
	}{
		{"small", 1000},
		{"big", 9000},
		{"mid", 5000},
		{"tiny", 500},
	} {
		if _, err := l.AddExpense(expense(tc.title, tc.cents, core.Other)); err != nil {
			t.Fatalf("seed %s: %v", tc.title, err)
		}
	}

	top := l.TopExpenses(3)
	if len(top) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(top))
	}
	for i, want := range []string{"big", "mid", "small"} {
		if top[i].Title != want {
			t.Fatalf("position %d expected %s, got %s", i, want, top[i].Title)
		}
	}
}

func TestTopExpensesTiesKeepInsertionOrder(t *testing.T) {
	l := New(money(10000000))
	for _, title := range []string{"first", "second", "third"} {
		if _, err := l.AddExpense(expense(title, 2000, core.Food)); err != nil {
			t.Fatalf("seed %s: %v", title, err)
		}
	}
	top := l.TopExpenses(3)
	for i, want := range []string{"first", "second", "third"} {
		if top[i].Title != want {
			t.Fatalf("position %d expected %s, got %s", i, want, top[i].Title)
		}
	}
}

func TestTopExpensesDefaultsN(t *testing.T) {
	l := seedLedger(t, map[string]int64{"a": 100, "b": 200, "c": 300, "d": 400, "e": 500, "f": 600}, core.Food)
	if got := len(l.TopExpenses(0)); got != DefaultTopN {
		t.Fatalf("expected %d entries for n=0, got %d", DefaultTopN, got)
	}
	if got := len(l.TopExpenses(100)); got != 6 {
		t.Fatalf("expected all 6 entries, got %d", got)
	}
}

func TestPaginate(t *testing.T) {
	l := New(money(10000000))
	for i := 0; i < 7; i++ {
		if _, err := l.AddExpense(expense("item", 1000, core.Food)); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	cases := []struct {
		page, pageSize int
		wantLen        int
		wantPages      int
	}{
		{1, 3, 3, 3},
		{2, 3, 3, 3},
		{3, 3, 1, 3}, // last partial page
		{4, 3, 0, 3}, // past the end
		{1, 10, 7, 1},
	}
	for i, tc := range cases {
		p := l.Paginate(tc.page, tc.pageSize)
		if len(p.Expenses) != tc.wantLen {
			t.Fatalf("case %d expected %d items, got %d", i, tc.wantLen, len(p.Expenses))
		}
		if p.TotalPages != tc.wantPages {
			t.Fatalf("case %d expected %d pages, got %d", i, tc.wantPages, p.TotalPages)
		}
		if p.TotalItems != 7 {
			t.Fatalf("case %d expected 7 total items, got %d", i, p.TotalItems)
		}
	}
}

func TestPaginateEmptyLedger(t *testing.T) {
	l := New(money(10000))
	p := l.Paginate(1, 10)
	if len(p.Expenses) != 0 || p.TotalPages != 1 || p.TotalItems != 0 {
		t.Fatalf("unexpected page for empty ledger: %+v", p)
	}
}

func TestPaginateTransactions(t *testing.T) {
	l := New(money(10000000))
	if _, err := l.AddIncome(money(5000), "bonus"); err != nil {
		t.Fatalf("income: %v", err)
	}
	if _, err := l.AddExpense(expense("snack", 500, core.Food)); err != nil {
		t.Fatalf("expense: %v", err)
	}

	txs, totalPages := l.PaginateTransactions(1, 10)
	if len(txs) != 2 || totalPages != 1 {
		t.Fatalf("expected 2 transactions on 1 page, got %d on %d", len(txs), totalPages)
	}
	// Most recent first: the expense follows the income.
	if txs[0].Kind != core.KindExpense || txs[1].Kind != core.KindIncome {
		t.Fatalf("unexpected order: %s, %s", txs[0].Kind, txs[1].Kind)
	}

	txs, totalPages = l.PaginateTransactions(2, 1)
	if len(txs) != 1 || totalPages != 2 || txs[0].Kind != core.KindIncome {
		t.Fatalf("unexpected second page: %+v (pages=%d)", txs, totalPages)
	}
}
