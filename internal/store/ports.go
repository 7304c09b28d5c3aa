// Package store defines the persistence port for wallet snapshots.
package store

import (
	"context"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

// SnapshotStore is the outbound port for snapshot persistence.
//
// Load reports found=false both when nothing has been saved yet and when
// the saved data cannot be parsed; a corrupt snapshot is logged by the
// adapter and treated as absent so the wallet starts fresh instead of
// failing. Save is best-effort from the caller's perspective: a failure is
// surfaced as an error for logging but must never roll back the in-memory
// mutation that triggered it.
type SnapshotStore interface {
	Load(ctx context.Context) (snapshot core.Snapshot, found bool, err error)
	Save(ctx context.Context, snapshot core.Snapshot) error
}
