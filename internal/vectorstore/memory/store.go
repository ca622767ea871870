// Package memory provides an in-memory vectorstore.Store for tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Recklore/sih2025/internal/vectorstore"
)

// Store keeps objects in a map, keyed by collection name.
type Store struct {
	mu          sync.Mutex
	collections map[string][]vectorstore.Object
}

func New() *Store {
	return &Store{collections: make(map[string][]vectorstore.Object)}
}

func (s *Store) EnsureCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[name]; !ok {
		s.collections[name] = nil
	}
	return nil
}

func (s *Store) ReplaceCollection(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[name] = nil
	return nil
}

func (s *Store) Insert(_ context.Context, collection string, objects []vectorstore.Object) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection]; !ok {
		return 0, fmt.Errorf("collection %s does not exist", collection)
	}
	s.collections[collection] = append(s.collections[collection], objects...)
	return len(objects), nil
}

func (s *Store) DeleteByFileName(_ context.Context, collection, fileName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	objs, ok := s.collections[collection]
	if !ok {
		return 0, nil
	}
	var kept []vectorstore.Object
	var removed int64
	for _, o := range objs {
		if o.FileName == fileName {
			removed++
			continue
		}
		kept = append(kept, o)
	}
	s.collections[collection] = kept
	return removed, nil
}

func (s *Store) Close() error { return nil }

// Objects returns a copy of a collection's contents for assertions.
func (s *Store) Objects(collection string) []vectorstore.Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]vectorstore.Object, len(s.collections[collection]))
	copy(out, s.collections[collection])
	return out
}

// Collections lists the collection names that currently exist.
func (s *Store) Collections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}
