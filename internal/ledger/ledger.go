// Package ledger implements the wallet aggregate: balance, cumulative
// income and the expense collection, together with every mutation and
// derived query the UI consumes.
package ledger

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

// Ledger owns all wallet state. Every exported method is a single atomic
// transition: the balance invariant
//
//	balance == initialBalance + totalIncome - sum(expenses)
//
// holds before and after each call, and a failed call leaves the state
// untouched. A mutex serializes callers so the aggregate stays consistent
// when driven from concurrent HTTP handlers.
type Ledger struct {
	mu             sync.Mutex
	initialBalance core.Money
	balance        core.Money
	totalIncome    core.Money
	expenses       []core.Expense     // most recent first
	transactions   []core.Transaction // most recent first
}

// ExpensePatch carries the fields of an update; nil fields keep the
// current value.
type ExpensePatch struct {
	Title    *string
	Amount   *core.Money
	Category *core.Category
	Date     *core.Date
}

// New creates a fresh ledger starting at the given balance.
func New(initialBalance core.Money) *Ledger {
	return &Ledger{
		initialBalance: initialBalance,
		balance:        initialBalance,
	}
}

// AddIncome credits the wallet. The amount must be positive; on success a
// new income transaction dated today is prepended to the activity log.
func (l *Ledger) AddIncome(amount core.Money, note string) (core.Transaction, error) {
	if err := amount.Validate(); err != nil {
		return core.Transaction{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.balance = l.balance.Add(amount)
	l.totalIncome = l.totalIncome.Add(amount)

	tx := core.Transaction{
		ID:     uuid.NewString(),
		Kind:   core.KindIncome,
		Title:  strings.TrimSpace(note),
		Amount: amount,
		Date:   core.Today(),
	}
	l.transactions = append([]core.Transaction{tx}, l.transactions...)
	return tx, nil
}

// AddExpense records a spend. The expense must validate, and its amount may
// not exceed the current balance. A fresh ID is assigned; the caller's ID
// field is ignored.
func (l *Ledger) AddExpense(e core.Expense) (core.Expense, error) {
	e.Title = strings.TrimSpace(e.Title)
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Amount.Cents > l.balance.Cents {
		return core.Expense{}, core.ErrInsufficientBalance
	}

	e.ID = uuid.NewString()
	l.balance = l.balance.Sub(e.Amount)
	l.expenses = append([]core.Expense{e}, l.expenses...)
	l.transactions = append([]core.Transaction{{
		ID:       uuid.NewString(),
		Kind:     core.KindExpense,
		Title:    e.Title,
		Amount:   e.Amount,
		Category: e.Category,
		Date:     e.Date,
	}}, l.transactions...)
	return e, nil
}

// UpdateExpense replaces the fields of an existing expense and adjusts the
// balance by the amount delta. The new amount is checked against the
// balance as if the old expense were refunded first, so an update cannot
// overdraw the wallet any more than AddExpense can.
func (l *Ledger) UpdateExpense(id string, patch ExpensePatch) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return core.Expense{}, core.ErrExpenseNotFound
	}

	old := l.expenses[idx]
	next := old
	if patch.Title != nil {
		next.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Amount != nil {
		next.Amount = *patch.Amount
	}
	if patch.Category != nil {
		next.Category = *patch.Category
	}
	if patch.Date != nil {
		next.Date = *patch.Date
	}
	if err := next.Validate(); err != nil {
		return core.Expense{}, err
	}

	refunded := l.balance.Add(old.Amount)
	if next.Amount.Cents > refunded.Cents {
		return core.Expense{}, core.ErrInsufficientBalance
	}

	l.balance = refunded.Sub(next.Amount)
	l.expenses[idx] = next
	return next, nil
}

// DeleteExpense removes the matching record and refunds its amount.
// Deleting an id that is already gone fails and changes nothing.
func (l *Ledger) DeleteExpense(id string) (core.Expense, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return core.Expense{}, core.ErrExpenseNotFound
	}

	removed := l.expenses[idx]
	l.expenses = append(l.expenses[:idx], l.expenses[idx+1:]...)
	l.balance = l.balance.Add(removed.Amount)
	return removed, nil
}

// Balance returns the current spendable amount.
func (l *Ledger) Balance() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// TotalIncome returns the cumulative income. It never decreases.
func (l *Ledger) TotalIncome() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalIncome
}

// TotalExpenses returns the sum of all recorded expenses.
func (l *Ledger) TotalExpenses() core.Money {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sumExpensesLocked()
}

// Expenses returns a copy of the expense list, most recent first.
func (l *Ledger) Expenses() []core.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out
}

// Transactions returns a copy of the activity log, most recent first.
func (l *Ledger) Transactions() []core.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]core.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Snapshot captures the full wallet state for persistence.
func (l *Ledger) Snapshot() core.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := core.Snapshot{
		InitialBalance: l.initialBalance.Cents,
		Balance:        l.balance.Cents,
		TotalIncome:    l.totalIncome.Cents,
	}
	for _, e := range l.expenses {
		s.Expenses = append(s.Expenses, core.SnapshotExpense{
			ID:       e.ID,
			Title:    e.Title,
			Cents:    e.Amount.Cents,
			Category: string(e.Category),
			Date:     core.EncodeDate(e.Date),
		})
	}
	for _, tx := range l.transactions {
		s.Transactions = append(s.Transactions, core.SnapshotTransaction{
			ID:       tx.ID,
			Kind:     string(tx.Kind),
			Title:    tx.Title,
			Cents:    tx.Amount.Cents,
			Category: string(tx.Category),
			Date:     core.EncodeDate(tx.Date),
		})
	}
	return s
}

// Restore builds a ledger from a persisted snapshot. A snapshot whose
// balance does not satisfy the invariant is rejected so the caller can fall
// back to a fresh wallet instead of resurrecting corrupt state.
func Restore(s core.Snapshot) (*Ledger, error) {
	l := &Ledger{
		initialBalance: core.Money{Cents: s.InitialBalance},
		balance:        core.Money{Cents: s.Balance},
		totalIncome:    core.Money{Cents: s.TotalIncome},
	}
	for _, se := range s.Expenses {
		if se.Cents <= 0 {
			// An expense like this must never have been persisted;
			// drop it rather than poison the aggregate.
			continue
		}
		l.expenses = append(l.expenses, core.Expense{
			ID:       se.ID,
			Title:    se.Title,
			Amount:   core.Money{Cents: se.Cents},
			Category: core.Category(se.Category),
			Date:     core.DecodeDate(se.Date),
		})
	}
	for _, st := range s.Transactions {
		l.transactions = append(l.transactions, core.Transaction{
			ID:       st.ID,
			Kind:     core.TransactionKind(st.Kind),
			Title:    st.Title,
			Amount:   core.Money{Cents: st.Cents},
			Category: core.Category(st.Category),
			Date:     core.DecodeDate(st.Date),
		})
	}

	if want := l.initialBalance.Cents + l.totalIncome.Cents - l.sumExpensesLocked().Cents; want != l.balance.Cents {
		return nil, fmt.Errorf("snapshot balance %d does not match derived balance %d", l.balance.Cents, want)
	}
	return l, nil
}

func (l *Ledger) indexOf(id string) int {
	for i, e := range l.expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (l *Ledger) sumExpensesLocked() core.Money {
	var sum core.Money
	for _, e := range l.expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}
