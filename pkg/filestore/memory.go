package filestore

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store used in tests and as a fallback when no
// directory has been configured yet.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{files: make(map[string]string)}
}

func (s *MemoryStore) ListKeys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.files))
	for key := range s.files {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Read(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[key]
	return content, ok, nil
}

func (s *MemoryStore) Write(key string, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = content
	return nil
}

func (s *MemoryStore) Remove(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[key]
	delete(s.files, key)
	return ok, nil
}

func (s *MemoryStore) Exists(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[key]
	return ok, nil
}
