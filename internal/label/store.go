package label

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Store maps image keys (paths) to their collections. Collections are
// created lazily on first access and never removed while the process runs.
// Each collection carries its own lock, so the UI thread and the auto-label
// worker only contend when they touch the same image.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*Collection
	nameSeq     atomic.Int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{collections: make(map[string]*Collection)}
}

// Collection returns the collection for the given image key, creating it
// if needed.
func (s *Store) Collection(key string) *Collection {
	s.mu.RLock()
	c, ok := s.collections[key]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok = s.collections[key]; ok {
		return c
	}
	c = NewCollection()
	s.collections[key] = c
	return c
}

// Keys returns the image keys that currently have a collection.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.collections))
	for k := range s.collections {
		keys = append(keys, k)
	}
	return keys
}

// NextName generates a sequential display name for a hand-drawn or pasted
// box. Detector-generated boxes all share the name "AI Label" instead.
func (s *Store) NextName() string {
	return fmt.Sprintf("Label %d", s.nameSeq.Add(1))
}
