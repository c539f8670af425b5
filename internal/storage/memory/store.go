// Package memory provides Hoard's in-memory data store.
package memory

import (
	"github.com/yndnr/hoard-go/internal/core/domain"
	"github.com/yndnr/hoard-go/pkg/cmap"
)

// Store is the process-wide key-value mapping.
type Store struct {
	items *cmap.Map[string, domain.Entry]
}

// Option configures the Store.
type Option func(*storeOptions)

type storeOptions struct {
	shards int
}

// WithShards sets the shard count (power of 2).
func WithShards(n int) Option {
	return func(o *storeOptions) {
		o.shards = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := storeOptions{shards: cmap.DefaultShardCount}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		items: cmap.NewWithShards[string, domain.Entry](o.shards),
	}
}

// Get returns the entry stored under key.
func (s *Store) Get(key string) (domain.Entry, bool) {
	return s.items.Get(key)
}

// Set inserts or overwrites e.Key.
func (s *Store) Set(e domain.Entry) {
	s.items.Set(e.Key, e)
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	return s.items.Delete(key)
}

// Clear removes every entry and returns how many were dropped.
func (s *Store) Clear() int {
	return s.items.Clear()
}

// MGet looks up each key in order. Duplicate keys are resolved independently.
func (s *Store) MGet(keys []string) []domain.Lookup {
	out := make([]domain.Lookup, len(keys))
	for i, k := range keys {
		e, ok := s.items.Get(k)
		out[i] = domain.Lookup{Entry: e, Found: ok}
	}
	return out
}

// MSet writes entries in order, one critical section per entry.
func (s *Store) MSet(entries []domain.Entry) {
	for _, e := range entries {
		s.items.Set(e.Key, e)
	}
}

// Count returns the number of entries.
func (s *Store) Count() int {
	return s.items.Count()
}

// Stats returns per-shard entry counts.
func (s *Store) Stats() []cmap.ShardStats {
	return s.items.Stats()
}
