// backend-go/internal/mapping/store.go
package mapping

import "sync/atomic"

// Store publishes Tables snapshots atomically. A reload builds the whole
// replacement table first and swaps a single pointer, so a concurrent
// reader never observes a half-populated table. Aggregation passes should
// call Snapshot once and keep using that reference.
type Store struct {
	current atomic.Pointer[Tables]
}

func NewStore(t *Tables) *Store {
	s := &Store{}
	if t == nil {
		t = BuildTables(nil, nil, nil)
	}
	s.current.Store(t)
	return s
}

// Snapshot returns the currently published tables.
func (s *Store) Snapshot() *Tables {
	return s.current.Load()
}

// Swap publishes a fully built replacement snapshot.
func (s *Store) Swap(t *Tables) {
	if t == nil {
		return
	}
	s.current.Store(t)
}
