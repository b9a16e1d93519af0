package inmemorystore

import (
	"context"
	"sort"
	"sync"

	"github.com/vk/kunyue/internal/ctxlog"
	"github.com/vk/kunyue/internal/registry"
)

// Store is an in-memory implementation of registry.Store.
type Store struct {
	mu      sync.RWMutex
	entries map[registry.Key]string
}

// New creates a new, empty in-memory registry store.
func New() registry.Store {
	return &Store{entries: make(map[registry.Key]string)}
}

// Put records plaintext under key, overwriting any existing entry.
func (s *Store) Put(ctx context.Context, key registry.Key, plaintext string) error {
	s.mu.Lock()
	_, replaced := s.entries[key]
	s.entries[key] = plaintext
	s.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Registry entry stored.", "key", string(key), "replaced", replaced)
	return nil
}

// Get retrieves the plaintext recorded under key.
func (s *Store) Get(ctx context.Context, key registry.Key) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plaintext, ok := s.entries[key]
	return plaintext, ok, nil
}

// Len returns the number of stored entries.
func (s *Store) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Keys returns all stored keys in sorted order.
func (s *Store) Keys(ctx context.Context) ([]registry.Key, error) {
	s.mu.RLock()
	keys := make([]registry.Key, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	s.mu.RUnlock()

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys, nil
}
