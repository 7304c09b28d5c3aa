// Package services orchestrates wallet operations across the ledger
// aggregate, the snapshot store and the AMQP event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/deepmavani/XpenseTracer/internal/amqp"
	"github.com/deepmavani/XpenseTracer/internal/core"
	"github.com/deepmavani/XpenseTracer/internal/ledger"
	"github.com/deepmavani/XpenseTracer/internal/store"
)

// EventPublisher publishes ledger events for the archive worker. A nil
// publisher disables eventing; the wallet keeps working without it.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error
}

// WalletService applies mutations to the ledger and persists a snapshot
// after each one. Persistence and event publishing are best-effort: their
// failures are logged, never propagated, so a full disk or a dead broker
// cannot fail a user's submission.
type WalletService struct {
	ledger  *ledger.Ledger
	store   store.SnapshotStore
	events  EventPublisher
	cleanup func() error
}

// ExpenseInput carries raw form strings for a new expense. Parsing and
// validation happen here; the presentation layer only checks presence.
type ExpenseInput struct {
	Title    string
	Amount   string
	Category string
	Date     string // ISO date; empty means today
}

// ExpensePatchInput carries raw form strings for an update. Empty fields
// keep their current value.
type ExpensePatchInput struct {
	Title    string
	Amount   string
	Category string
	Date     string
}

// NewWalletService restores the wallet from the snapshot store, or starts
// a fresh ledger at initialBalance when nothing (or nothing usable) is
// saved.
func NewWalletService(ctx context.Context, st store.SnapshotStore, events EventPublisher, initialBalance core.Money) (*WalletService, error) {
	snap, found, err := st.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var l *ledger.Ledger
	if found {
		l, err = ledger.Restore(snap)
		if err != nil {
			slog.WarnContext(ctx, "Persisted snapshot failed restore, starting fresh",
				"error", err)
			l = ledger.New(initialBalance)
		} else {
			slog.InfoContext(ctx, "Wallet restored from snapshot",
				"balance_cents", snap.Balance,
				"expenses", len(snap.Expenses))
		}
	} else {
		l = ledger.New(initialBalance)
		slog.InfoContext(ctx, "Starting fresh wallet",
			"initial_balance_cents", initialBalance.Cents)
	}

	return &WalletService{ledger: l, store: st, events: events}, nil
}

// WithCleanup registers a function invoked by Close, typically the backend
// cleanup returned by the factory.
func (s *WalletService) WithCleanup(fn func() error) *WalletService {
	s.cleanup = fn
	return s
}

// AddIncome parses the raw amount and credits the wallet.
func (s *WalletService) AddIncome(ctx context.Context, amount, note string) (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return core.Transaction{}, err
	}

	tx, err := s.ledger.AddIncome(core.Money{Cents: cents}, note)
	if err != nil {
		return core.Transaction{}, err
	}

	s.persist(ctx)
	s.publish(ctx, tx)
	return tx, nil
}

// AddExpense parses the raw input and records a spend.
func (s *WalletService) AddExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	e, err := parseExpenseInput(in)
	if err != nil {
		return core.Expense{}, err
	}

	created, err := s.ledger.AddExpense(e)
	if err != nil {
		return core.Expense{}, err
	}

	s.persist(ctx)
	s.publish(ctx, core.Transaction{
		ID:       created.ID,
		Kind:     core.KindExpense,
		Title:    created.Title,
		Amount:   created.Amount,
		Category: created.Category,
		Date:     created.Date,
	})
	return created, nil
}

// UpdateExpense edits an existing expense in place.
func (s *WalletService) UpdateExpense(ctx context.Context, id string, in ExpensePatchInput) (core.Expense, error) {
	patch, err := parsePatchInput(in)
	if err != nil {
		return core.Expense{}, err
	}

	updated, err := s.ledger.UpdateExpense(id, patch)
	if err != nil {
		return core.Expense{}, err
	}

	s.persist(ctx)
	return updated, nil
}

// DeleteExpense removes an expense and refunds its amount.
func (s *WalletService) DeleteExpense(ctx context.Context, id string) (core.Expense, error) {
	removed, err := s.ledger.DeleteExpense(id)
	if err != nil {
		return core.Expense{}, err
	}

	s.persist(ctx)
	return removed, nil
}

// Ledger exposes the aggregate for read-only queries.
func (s *WalletService) Ledger() *ledger.Ledger {
	return s.ledger
}

// Close runs the registered backend cleanup, if any.
func (s *WalletService) Close() error {
	if s.cleanup != nil {
		return s.cleanup()
	}
	return nil
}

// persist saves a snapshot after a successful mutation. Failure is logged
// and swallowed: the in-memory state is authoritative and must not be
// rolled back because a disk write failed.
func (s *WalletService) persist(ctx context.Context) {
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist wallet snapshot", "error", err)
	}
}

// publish sends the transaction to the archive stream, fire-and-forget.
func (s *WalletService) publish(ctx context.Context, tx core.Transaction) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishLedgerEvent(ctx, amqp.NewLedgerEventMessage(tx)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger event",
			"transaction_id", tx.ID,
			"error", err)
	}
}

func parseExpenseInput(in ExpenseInput) (core.Expense, error) {
	cents, err := core.ParseDecimalToCents(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}

	category, err := core.ParseCategory(in.Category)
	if err != nil {
		return core.Expense{}, err
	}

	date := core.Today()
	if strings.TrimSpace(in.Date) != "" {
		date, err = core.ParseDate(strings.TrimSpace(in.Date))
		if err != nil {
			return core.Expense{}, err
		}
	}

	return core.Expense{
		Title:    in.Title,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}, nil
}

func parsePatchInput(in ExpensePatchInput) (ledger.ExpensePatch, error) {
	var patch ledger.ExpensePatch

	if strings.TrimSpace(in.Title) != "" {
		title := strings.TrimSpace(in.Title)
		patch.Title = &title
	}
	if strings.TrimSpace(in.Amount) != "" {
		cents, err := core.ParseDecimalToCents(in.Amount)
		if err != nil {
			return ledger.ExpensePatch{}, err
		}
		amount := core.Money{Cents: cents}
		patch.Amount = &amount
	}
	if strings.TrimSpace(in.Category) != "" {
		category, err := core.ParseCategory(in.Category)
		if err != nil {
			return ledger.ExpensePatch{}, err
		}
		patch.Category = &category
	}
	if strings.TrimSpace(in.Date) != "" {
		date, err := core.ParseDate(strings.TrimSpace(in.Date))
		if err != nil {
			return ledger.ExpensePatch{}, err
		}
		patch.Date = &date
	}

	return patch, nil
}
