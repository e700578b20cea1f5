// Package history persists the simulation's wallet update history in a
// write-ahead log. The history is append-only by construction, which is
// exactly the contract WalletUpdate records carry.
package history

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/gowal"
	"github.com/vadiminshakov/replay/internal/services/simulation"
)

const (
	// DefaultDir is used when no directory is configured.
	DefaultDir = "./wal/history"

	segmentLimit = 1000
	maxSegments  = 100

	updateKey = "wallet_update"
)

// Store is a WAL-backed append-only store of wallet updates.
type Store struct {
	wal *gowal.Wal
	mu  sync.Mutex
}

// NewStore opens (or creates) the history WAL in the given directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = DefaultDir
	}

	wal, err := gowal.NewWAL(gowal.Config{
		Dir:              dir,
		Prefix:           "seg_",
		SegmentThreshold: segmentLimit,
		MaxSegments:      maxSegments,
		IsInSyncDiskMode: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "init history WAL")
	}

	return &Store{wal: wal}, nil
}

// Append writes one wallet update to the log.
func (s *Store) Append(update simulation.WalletUpdate) error {
	if s == nil || s.wal == nil {
		return errors.New("history store is not initialized")
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return errors.Wrap(err, "marshal wallet update")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Write(s.wal.CurrentIndex()+1, updateKey, payload)
}

// AppendAll writes a full history in order.
func (s *Store) AppendAll(history []simulation.WalletUpdate) error {
	for _, update := range history {
		if err := s.Append(update); err != nil {
			return err
		}
	}
	return nil
}

// All returns every stored wallet update in append order.
func (s *Store) All() ([]simulation.WalletUpdate, error) {
	if s == nil || s.wal == nil {
		return nil, errors.New("history store is not initialized")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var updates []simulation.WalletUpdate
	for m := range s.wal.Iterator() {
		if m.Key != updateKey {
			continue
		}
		var update simulation.WalletUpdate
		if err := json.Unmarshal(m.Value, &update); err != nil {
			return nil, errors.Wrap(err, "decode wallet update")
		}
		updates = append(updates, update)
	}

	return updates, nil
}

// Close closes the underlying WAL.
func (s *Store) Close() error {
	if s == nil || s.wal == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wal.Close()
}
