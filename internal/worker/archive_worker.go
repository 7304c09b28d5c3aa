// Package worker archives wallet transactions into SQLite, driven by the
// AMQP event stream with a reconciliation pass as backup.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/deepmavani/XpenseTracer/internal/amqp"
	"github.com/deepmavani/XpenseTracer/internal/storage"
	"github.com/deepmavani/XpenseTracer/internal/store"
)

// ArchiveWorker consumes ledger events and appends the transactions to the
// SQLite archive. Archiving is idempotent on the transaction id, so a
// replayed event or a reconciliation overlap writes nothing twice.
type ArchiveWorker struct {
	archive   *storage.SQLiteRepository
	snapshots store.SnapshotStore
}

func NewArchiveWorker(archive *storage.SQLiteRepository, snapshots store.SnapshotStore) *ArchiveWorker {
	return &ArchiveWorker{
		archive:   archive,
		snapshots: snapshots,
	}
}

// HandleLedgerEvent archives the transaction carried by one event.
func (w *ArchiveWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	inserted, err := w.archive.ArchiveTransaction(ctx, msg.Transaction())
	if err != nil {
		return fmt.Errorf("archive transaction from event: %w", err)
	}

	if inserted {
		slog.InfoContext(ctx, "Archived transaction",
			"transaction_id", msg.TransactionID,
			"kind", msg.Kind,
			"amount_cents", msg.AmountCents)
	} else {
		slog.DebugContext(ctx, "Transaction already archived",
			"transaction_id", msg.TransactionID)
	}
	return nil
}

// Reconcile walks the current snapshot and archives any transaction the
// event stream missed, e.g. while the worker or the broker was down. It is
// run once at startup and then periodically.
func (w *ArchiveWorker) Reconcile(ctx context.Context) error {
	snap, found, err := w.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot for reconciliation: %w", err)
	}
	if !found {
		slog.InfoContext(ctx, "No snapshot to reconcile against")
		return nil
	}

	archived := 0
	for _, st := range snap.Transactions {
		msg := &amqp.LedgerEventMessage{
			TransactionID: st.ID,
			Kind:          st.Kind,
			Title:         st.Title,
			AmountCents:   st.Cents,
			Category:      st.Category,
			Date:          st.Date,
		}
		inserted, err := w.archive.ArchiveTransaction(ctx, msg.Transaction())
		if err != nil {
			slog.ErrorContext(ctx, "Failed to archive transaction during reconciliation",
				"transaction_id", st.ID, "error", err)
			continue
		}
		if inserted {
			archived++
		}
	}

	if archived > 0 {
		slog.InfoContext(ctx, "Reconciliation archived missed transactions",
			"archived", archived,
			"snapshot_transactions", len(snap.Transactions))
	} else {
		slog.DebugContext(ctx, "Archive already up to date",
			"snapshot_transactions", len(snap.Transactions))
	}
	return nil
}
