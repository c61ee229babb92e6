package aggregatetest

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/database"
)

// MemoryRow is one child persisted by a MemoryStore.
type MemoryRow[C any] struct {
	RootID int64
	Child  C
	Stamp  aggregate.Stamp
}

// MemoryStore is an in-memory aggregate.ChildStore. Ids are global across
// roots, as with a real sequence, so orphan-id handling can be tested.
type MemoryStore[C any] struct {
	mu sync.Mutex

	// NaturalKey extracts the match key of linked children. Nil means owned
	// children matched by their own id.
	NaturalKey func(C) int64
	// WithID returns child carrying id.
	WithID func(child C, id int64) C

	FailCurrent error
	FailInsert  error
	FailUpdate  error
	FailDelete  error

	rows   map[int64]MemoryRow[C]
	nextID int64

	savedRows   map[int64]MemoryRow[C]
	savedNextID int64
}

var _ aggregate.ChildStore[int] = (*MemoryStore[int])(nil)

func (s *MemoryStore[C]) init() {
	if s.rows == nil {
		s.rows = make(map[int64]MemoryRow[C])
	}
}

// Seed stores child under rootID and returns its id.
func (s *MemoryStore[C]) Seed(rootID int64, child C) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	return s.insertLocked(rootID, child, aggregate.Stamp{})
}

func (s *MemoryStore[C]) insertLocked(rootID int64, child C, stamp aggregate.Stamp) int64 {
	s.nextID++
	id := s.nextID
	if s.WithID != nil {
		child = s.WithID(child, id)
	}
	s.rows[id] = MemoryRow[C]{RootID: rootID, Child: child, Stamp: stamp}
	return id
}

// Children returns the children of rootID ordered by id.
func (s *MemoryStore[C]) Children(rootID int64) []C {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []C
	for _, id := range slices.Sorted(maps.Keys(s.rows)) {
		if row := s.rows[id]; row.RootID == rootID {
			out = append(out, row.Child)
		}
	}
	return out
}

// Row returns the persisted row with id.
func (s *MemoryStore[C]) Row(id int64) (MemoryRow[C], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	return row, ok
}

// Snapshot saves the current state for a later Restore.
func (s *MemoryStore[C]) Snapshot() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	s.savedRows = maps.Clone(s.rows)
	s.savedNextID = s.nextID
}

// Restore reverts to the last Snapshot.
func (s *MemoryStore[C]) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = maps.Clone(s.savedRows)
	s.nextID = s.savedNextID
	s.init()
}

func (s *MemoryStore[C]) Current(_ context.Context, _ database.DBTX, rootID int64) ([]aggregate.Current, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailCurrent != nil {
		return nil, s.FailCurrent
	}
	var out []aggregate.Current
	for _, id := range slices.Sorted(maps.Keys(s.rows)) {
		row := s.rows[id]
		if row.RootID != rootID {
			continue
		}
		key := id
		if s.NaturalKey != nil {
			key = s.NaturalKey(row.Child)
		}
		out = append(out, aggregate.Current{Key: key, ID: id})
	}
	return out, nil
}

func (s *MemoryStore[C]) Insert(_ context.Context, _ database.DBTX, rootID int64, child C, stamp aggregate.Stamp) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailInsert != nil {
		return 0, s.FailInsert
	}
	s.init()
	return s.insertLocked(rootID, child, stamp), nil
}

func (s *MemoryStore[C]) Update(_ context.Context, _ database.DBTX, rootID, id int64, child C, stamp aggregate.Stamp) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpdate != nil {
		return s.FailUpdate
	}
	row, ok := s.rows[id]
	if !ok || row.RootID != rootID {
		return fmt.Errorf("child %d does not belong to root %d", id, rootID)
	}
	if s.WithID != nil {
		child = s.WithID(child, id)
	}
	s.rows[id] = MemoryRow[C]{RootID: rootID, Child: child, Stamp: stamp}
	return nil
}

func (s *MemoryStore[C]) Delete(_ context.Context, _ database.DBTX, rootID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete != nil {
		return s.FailDelete
	}
	row, ok := s.rows[id]
	if !ok || row.RootID != rootID {
		return fmt.Errorf("child %d does not belong to root %d", id, rootID)
	}
	delete(s.rows, id)
	return nil
}
