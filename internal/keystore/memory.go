package keystore

import (
	"fmt"
	"sync"

	kerrors "github.com/PolarWolf314/tagkeys/internal/errors"
)

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu   sync.RWMutex
	keys KeyMap
}

// NewMemoryStore returns a MemoryStore seeded with a copy of initial.
func NewMemoryStore(initial KeyMap) *MemoryStore {
	return &MemoryStore{keys: initial.Clone()}
}

func (s *MemoryStore) Load() (KeyMap, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys.Clone(), nil
}

func (s *MemoryStore) Save(m KeyMap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = m.Clone()
	return nil
}

func (s *MemoryStore) Get(tag string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	password, ok := s.keys[tag]
	return password, ok, nil
}

func (s *MemoryStore) Set(tag, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[tag] = password
	return nil
}

func (s *MemoryStore) Delete(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.keys[tag]; !ok {
		return fmt.Errorf("%w: %q", kerrors.ErrTagNotFound, tag)
	}
	delete(s.keys, tag)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
