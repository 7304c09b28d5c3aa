package ledger

import (
	"sort"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

// DefaultTopN is the bar-chart size used when the caller does not ask for
// a specific count.
const DefaultTopN = 5

// CategoryTotals sums expenses per category. Every category of the closed
// enumeration is present in the result; categories with no expenses report
// zero rather than being absent, so the pie chart always has a stable shape.
func (l *Ledger) CategoryTotals() []core.CategoryAmount {
	l.mu.Lock()
	defer l.mu.Unlock()

	sums := make(map[core.Category]int64, 4)
	for _, e := range l.expenses {
		sums[e.Category] += e.Amount.Cents
	}

	out := make([]core.CategoryAmount, 0, 4)
	for _, c := range core.Categories() {
		out = append(out, core.CategoryAmount{
			Category: c,
			Amount:   core.Money{Cents: sums[c]},
		})
	}
	return out
}

// TopExpenses returns up to n expenses sorted by amount, largest first.
// Ties keep original insertion order. Records with a non-positive amount
// are filtered out; the invariant means none should exist, the filter just
// keeps a corrupt record out of the chart.
func (l *Ledger) TopExpenses(n int) []core.Expense {
	if n <= 0 {
		n = DefaultTopN
	}

	l.mu.Lock()
	items := make([]core.Expense, 0, len(l.expenses))
	// l.expenses is most recent first; walk backwards so the working
	// slice is in insertion order and the stable sort breaks ties on it.
	for i := len(l.expenses) - 1; i >= 0; i-- {
		if e := l.expenses[i]; e.Amount.Cents > 0 {
			items = append(items, e)
		}
	}
	l.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount.Cents > items[j].Amount.Cents
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

// Paginate returns the 1-indexed page of the expense list (most recent
// first). TotalPages is at least 1 even for an empty wallet. A page past
// the end yields an empty slice without error; clamping the page number is
// the presentation layer's concern.
func (l *Ledger) Paginate(page, pageSize int) core.Page {
	if pageSize <= 0 {
		pageSize = 1
	}
	if page <= 0 {
		page = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	total := len(l.expenses)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	p := core.Page{
		PageNumber: page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	p.Expenses = make([]core.Expense, end-start)
	copy(p.Expenses, l.expenses[start:end])
	return p
}

// PaginateTransactions pages through the activity log the same way
// Paginate pages through expenses.
func (l *Ledger) PaginateTransactions(page, pageSize int) ([]core.Transaction, int) {
	if pageSize <= 0 {
		pageSize = 1
	}
	if page <= 0 {
		page = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	total := len(l.transactions)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * pageSize
	if start >= total {
		return nil, totalPages
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	out := make([]core.Transaction, end-start)
	copy(out, l.transactions[start:end])
	return out, totalPages
}
