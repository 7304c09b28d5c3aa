package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/deepmavani/XpenseTracer/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository stores the wallet snapshot in a single-row table and
// keeps an append-only archive of transactions written by the worker.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements store.SnapshotStore. A missing row means nothing has
// been saved yet; a row that fails to decode is treated the same way.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Snapshot, bool, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read snapshot row: %w", err)
	}

	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		slog.WarnContext(ctx, "Stored snapshot is corrupt, starting fresh", "error", err)
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save implements store.SnapshotStore via a single-row upsert.
func (r *SQLiteRepository) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := core.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (id, data, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = CURRENT_TIMESTAMP`,
		data)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved to SQLite",
		"balance_cents", snap.Balance,
		"expenses", len(snap.Expenses))
	return nil
}

// ArchiveTransaction appends a transaction to the archive. The insert is
// idempotent on the transaction id, so replayed events and the startup
// reconciliation pass can call it blindly. Returns true when a new row was
// written.
func (r *SQLiteRepository) ArchiveTransaction(ctx context.Context, tx core.Transaction) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO archived_transactions (id, kind, title, amount_cents, category, tx_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, string(tx.Kind), tx.Title, tx.Amount.Cents, string(tx.Category), core.EncodeDate(tx.Date))
	if err != nil {
		return false, fmt.Errorf("archive transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("archive transaction rows affected: %w", err)
	}
	return n > 0, nil
}

// CountArchived returns the number of archived transactions.
func (r *SQLiteRepository) CountArchived(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM archived_transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count archived transactions: %w", err)
	}
	return n, nil
}
