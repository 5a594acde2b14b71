package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/filmoteca/filmoteca/internal/model"
)

// JSONFileStore keeps the whole collection in a single JSON file.
//
// Reads and writes always cover the full document. The mutex serializes
// access within this process only; the flat file offers no protection
// against other processes writing the same path.
type JSONFileStore struct {
	mu   sync.RWMutex
	path string
}

// NewJSONFileStore creates a store backed by the JSON document at path.
// The file is not created here; see EnsureJSONDocument.
func NewJSONFileStore(path string) *JSONFileStore {
	return &JSONFileStore{path: path}
}

// EnsureJSONDocument writes an empty collection document at path when no
// file exists there yet. Existing files, including corrupt ones, are left
// untouched so operator data is never silently replaced.
func EnsureJSONDocument(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return wrapStorage("stat document", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return wrapStorage("create data directory", err)
	}
	empty := &model.Collection{Movies: []model.Movie{}}
	b, err := json.MarshalIndent(empty, "", "  ")
	if err != nil {
		return wrapStorage("encode empty document", err)
	}
	return wrapStorage("write empty document", os.WriteFile(path, b, 0o644))
}

func (s *JSONFileStore) ReadAll(ctx context.Context) (*model.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, wrapStorage("read document", err)
	}
	var c model.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, wrapStorage("decode document", err)
	}
	if c.Movies == nil {
		c.Movies = []model.Movie{}
	}
	return &c, nil
}

func (s *JSONFileStore) WriteAll(ctx context.Context, c *model.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return wrapStorage("encode document", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return wrapStorage("create data directory", err)
	}
	return wrapStorage("write document", os.WriteFile(s.path, b, 0o644))
}

func (s *JSONFileStore) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, err := os.Stat(s.path); err != nil {
		return wrapStorage("stat document", err)
	}
	return nil
}

func (s *JSONFileStore) Close() error { return nil }
