// Package memory provides an in-memory implementation of storage.KV.
// Data is lost when the process exits; it is the store used by tests
// and by ephemeral runs without a data directory.
package memory

import (
	"sync"

	"github.com/dromero/financepro/internal/storage"
)

// Store is an in-memory key-value store, safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Get implements storage.KV. The returned slice is a copy.
func (s *Store) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

// Set implements storage.KV.
func (s *Store) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := make([]byte, len(value))
	copy(copied, value)
	s.data[key] = copied
	return nil
}

var _ storage.KV = (*Store)(nil)
