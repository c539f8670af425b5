// Package cmap provides a concurrent-safe sharded map.
package cmap

import (
	"sync"

	"github.com/spaolacci/murmur3"
)

// DefaultShardCount is the default number of shards.
const DefaultShardCount = 16

// Map is a concurrent-safe sharded map keyed by strings.
type Map[K ~string, V any] struct {
	shards    []*shard[K, V]
	shardMask uint64
}

type shard[K ~string, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// New creates a new sharded map with the default shard count.
func New[K ~string, V any]() *Map[K, V] {
	return NewWithShards[K, V](DefaultShardCount)
}

// NewWithShards creates a new sharded map with the specified shard count.
// shardCount must be a power of 2; other values fall back to the default.
func NewWithShards[K ~string, V any](shardCount int) *Map[K, V] {
	if shardCount <= 0 || shardCount&(shardCount-1) != 0 {
		shardCount = DefaultShardCount
	}

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], shardCount),
		shardMask: uint64(shardCount - 1),
	}

	for i := 0; i < shardCount; i++ {
		m.shards[i] = &shard[K, V]{
			items: make(map[K]V),
		}
	}

	return m
}

func (m *Map[K, V]) shardIndex(key K) int {
	return int(murmur3.Sum64([]byte(key)) & m.shardMask)
}

func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[m.shardIndex(key)]
}

// Get retrieves a value by key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	shard := m.getShard(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	val, ok := shard.items[key]
	return val, ok
}

// Set stores a key-value pair, replacing any previous value.
func (m *Map[K, V]) Set(key K, value V) {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	shard.items[key] = value
}

// Delete removes a key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	shard := m.getShard(key)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	if _, ok := shard.items[key]; !ok {
		return false
	}
	delete(shard.items, key)
	return true
}

// Count returns the total number of items.
func (m *Map[K, V]) Count() int {
	count := 0
	for _, shard := range m.shards {
		shard.mu.RLock()
		count += len(shard.items)
		shard.mu.RUnlock()
	}
	return count
}

// Clear removes all items and returns how many were dropped.
func (m *Map[K, V]) Clear() int {
	dropped := 0
	for _, shard := range m.shards {
		shard.mu.Lock()
		dropped += len(shard.items)
		shard.items = make(map[K]V)
		shard.mu.Unlock()
	}
	return dropped
}

// ShardStats describes one shard.
type ShardStats struct {
	Index int `json:"index" yaml:"index"`
	Count int `json:"count" yaml:"count"`
}

// Stats returns per-shard item counts.
func (m *Map[K, V]) Stats() []ShardStats {
	stats := make([]ShardStats, len(m.shards))
	for i, shard := range m.shards {
		shard.mu.RLock()
		stats[i] = ShardStats{
			Index: i,
			Count: len(shard.items),
		}
		shard.mu.RUnlock()
	}
	return stats
}
