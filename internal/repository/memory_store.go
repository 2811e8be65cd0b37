package repository

import (
	"context"
	"sync"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// MemoryGuestStore keeps the guest list in process memory.  Used by the
// memory driver and by tests.
type MemoryGuestStore struct {
	mu   sync.RWMutex
	rows model.Collection
}

// NewMemoryGuestStore returns a store seeded with a copy of rows.
func NewMemoryGuestStore(rows model.Collection) *MemoryGuestStore {
	return &MemoryGuestStore{rows: rows.Clone()}
}

func (s *MemoryGuestStore) Load(ctx context.Context) (model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.rows == nil {
		return model.Collection{}, nil
	}
	return s.rows.Clone(), nil
}

func (s *MemoryGuestStore) Save(ctx context.Context, c model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = c.Clone()
	return nil
}
