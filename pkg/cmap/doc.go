// Package cmap provides a concurrent map for Hoard's data store.
//
// The map is split into a power-of-two number of shards, each guarded by
// its own RWMutex. A key's shard is chosen by its murmur3 hash, so
// operations on keys in different shards never contend.
//
//   - Single-key operations (Get, Set, Delete, Pop, Update) hold exactly
//     one shard lock for their duration.
//   - Whole-map operations (Count, Clear, Range, Stats) visit the shards
//     one at a time and are not a consistent snapshot.
//
// Usage:
//
//	m := cmap.New[string, []byte]()
//	m.Set("key", []byte("v"))
//	val, ok := m.Get("key")
package cmap
