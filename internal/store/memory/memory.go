// Package memory keeps the wallet snapshot in process memory. It backs the
// default dev setup and the tests.
package memory

import (
	"context"
	"sync"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

type Store struct {
	mu    sync.Mutex
	data  []byte
	saved bool

	// FailSaves makes Save return an error; tests use it to check that a
	// persistence failure never fails a wallet operation.
	FailSaves error
}

func New() *Store {
	return &Store{}
}

func (s *Store) Load(_ context.Context) (core.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return core.Snapshot{}, false, nil
	}
	snap, err := core.DecodeSnapshot(s.data)
	if err != nil {
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *Store) Save(_ context.Context, snap core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	data, err := core.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.data = data
	s.saved = true
	return nil
}

// Corrupt overwrites the stored bytes with garbage so tests can exercise
// the corrupt-snapshot-as-absent path.
func (s *Store) Corrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = []byte("{not json")
	s.saved = true
}
