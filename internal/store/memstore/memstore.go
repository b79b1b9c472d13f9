// Package memstore provides an in-memory store implementation.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"github.com/absfs/objpack/internal/store"
)

var _ store.Store = (*Store)(nil)

// Store is an in-memory store, mostly for tests.
type Store struct {
	mu        sync.RWMutex
	artifacts map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		artifacts: make(map[string][]byte),
	}
}

// Get returns a copy of the artifact stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := store.Canceled(ctx); err != nil {
		return nil, err
	}
	if err := store.ValidateKey(key); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.artifacts[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return bytes.Clone(data), nil
}

// Put stores a copy of data under key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := store.Canceled(ctx); err != nil {
		return err
	}
	if err := store.ValidateKey(key); err != nil {
		return err
	}

	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[key] = copied
	return nil
}

// Delete removes the artifact stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := store.Canceled(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.artifacts[key]; !ok {
		return store.ErrNotFound
	}
	delete(s.artifacts, key)
	return nil
}

// Keys returns every stored key in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.artifacts))
	for k := range s.artifacts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
