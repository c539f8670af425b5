// Package memory provides Hoard's in-memory data store.
//
// The store maps keys to items, where an item is a decoded value together
// with its cached wire encoding (domain.Entry). It is backed by a sharded concurrent map
// (pkg/cmap), so every single-key read or write is one critical section on
// the key's shard.
//
// Thread Safety:
//
// All operations are thread-safe. MGet and MSet are not atomic as a whole:
// each key's read or each pair's write is an independent critical section,
// and other clients' operations may interleave between them. Clear locks
// shards one at a time.
//
// Lifetime:
//
// One Store is created at startup and shared by every connection for the
// life of the process. Nothing is persisted and nothing expires.
package memory
