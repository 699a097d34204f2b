package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	errs "github.com/matzehuels/dashgrid/pkg/errors"
)

// MemoryStore keeps layouts in memory. Layouts are stored as JSON so callers
// never share mutable state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string][]byte)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (l *Layout, err error) {
	defer func(start time.Time) { observe(ctx, BackendMemory, "get", start, err) }(time.Now())

	s.mu.RLock()
	data, ok := s.layouts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	l = new(Layout)
	if err := json.Unmarshal(data, l); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "decode layout %q", id)
	}
	return l, nil
}

func (s *MemoryStore) Put(ctx context.Context, l *Layout) (err error) {
	defer func(start time.Time) { observe(ctx, BackendMemory, "put", start, err) }(time.Now())

	if err := errs.ValidateID(l.ID); err != nil {
		return err
	}
	stamp(l)
	data, err := json.Marshal(l)
	if err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "encode layout %q", l.ID)
	}
	s.mu.Lock()
	s.layouts[l.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	defer func(start time.Time) { observe(ctx, BackendMemory, "delete", start, nil) }(time.Now())

	s.mu.Lock()
	delete(s.layouts, id)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	defer func(start time.Time) { observe(ctx, BackendMemory, "list", start, nil) }(time.Now())

	s.mu.RLock()
	ids := make([]string, 0, len(s.layouts))
	for id := range s.layouts {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	return sortIDs(ids), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
