package store

import (
	"context"
	"sync"

	"github.com/filmoteca/filmoteca/internal/model"
)

// MemoryStore is an ephemeral in-process document store used by tests and
// the testing configuration. It starts with an empty collection.
type MemoryStore struct {
	mu  sync.RWMutex
	doc *model.Collection
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: &model.Collection{Movies: []model.Movie{}}}
}

func (s *MemoryStore) ReadAll(ctx context.Context) (*model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone(), nil
}

func (s *MemoryStore) WriteAll(ctx context.Context, c *model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = c.Clone()
	return nil
}

func (s *MemoryStore) HealthCheck(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
