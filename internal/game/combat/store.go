package combat

import (
	"fmt"
	"sync/atomic"
)

// Store publishes the active balance tables to concurrent readers. Balance
// changes replace the whole Tables reference in one atomic swap; a reader
// can never observe a half-updated table.
type Store struct {
	tables atomic.Pointer[Tables]
}

// NewStore creates a Store publishing t.
//
// Precondition: t must be non-nil and valid.
func NewStore(t *Tables) (*Store, error) {
	s := &Store{}
	if err := s.Swap(t); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the active tables. The returned value is immutable; callers
// must not retain it across a resolution boundary if they care about picking
// up swaps.
func (s *Store) Current() *Tables {
	return s.tables.Load()
}

// Swap validates t and atomically publishes it as the active tables.
//
// Postcondition: On success every subsequent Current call returns t; on error
// the previously active tables remain in effect.
func (s *Store) Swap(t *Tables) error {
	if t == nil {
		return fmt.Errorf("tables must not be nil")
	}
	if err := t.Validate(); err != nil {
		return err
	}
	s.tables.Store(t)
	return nil
}
