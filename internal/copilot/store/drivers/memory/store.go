// Package memory implements a document Store backed by process memory.
package memory

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/copilot/internal/copilot/store"
)

// Store keeps documents in a map. Intended for tests and throwaway runs.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New returns an empty in-memory store.
func New() *Store { return &Store{docs: make(map[string][]byte)} }

func (s *Store) Driver() store.Driver { return store.DriverMemory }

func (s *Store) Read(_ context.Context, name string) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	doc, ok := s.docs[name]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}

	out := make([]byte, len(doc))
	copy(out, doc)
	return out, nil
}

func (s *Store) Write(_ context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	doc := make([]byte, len(data))
	copy(doc, data)

	s.mu.Lock()
	s.docs[name] = doc
	s.mu.Unlock()
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }
