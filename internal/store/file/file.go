// Package file persists wallet snapshots to a single JSON file, the
// server-side analog of the browser localStorage the UI originally used.
package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the snapshot file. A missing file or one that fails to parse
// is reported as absent, never as a fatal error.
func (s *Store) Load(ctx context.Context) (core.Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return core.Snapshot{}, false, nil
	}
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read snapshot file: %w", err)
	}

	snap, err := core.DecodeSnapshot(data)
	if err != nil {
		slog.WarnContext(ctx, "Snapshot file is corrupt, starting fresh",
			"path", s.path,
			"error", err)
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save writes the snapshot atomically via a temp file and rename, so a
// crash mid-write never leaves a half-written snapshot behind.
func (s *Store) Save(ctx context.Context, snap core.Snapshot) error {
	data, err := core.EncodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write snapshot temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved",
		"path", s.path,
		"balance_cents", snap.Balance,
		"expenses", len(snap.Expenses))
	return nil
}
