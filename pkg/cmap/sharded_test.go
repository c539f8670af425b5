package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	m := New[string, int]()
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if len(m.shards) != DefaultShardCount {
		t.Errorf("shard count = %d, want %d", len(m.shards), DefaultShardCount)
	}
}

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},
		{-1, DefaultShardCount},
		{3, DefaultShardCount},
		{1, 1},
		{2, 2},
		{8, 8},
		{64, 64},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[string, int](tt.input)
			if len(m.shards) != tt.expected {
				t.Errorf("NewWithShards(%d) shard count = %d, want %d",
					tt.input, len(m.shards), tt.expected)
			}
		})
	}
}

func TestSetAndGet(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)
	m.Set("key2", 200)

	val, ok := m.Get("key1")
	if !ok || val != 100 {
		t.Errorf("Get(key1) = (%d, %v), want (100, true)", val, ok)
	}

	val, ok = m.Get("nonexistent")
	if ok {
		t.Errorf("Get(nonexistent) = (%d, %v), want (0, false)", val, ok)
	}
}

func TestKeysAreCaseSensitive(t *testing.T) {
	m := New[string, int]()
	m.Set("Key", 1)
	m.Set("key", 2)

	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
	if v, _ := m.Get("Key"); v != 1 {
		t.Errorf("Get(Key) = %d, want 1", v)
	}
}

func TestDelete(t *testing.T) {
	m := New[string, int]()

	m.Set("key1", 100)
	if !m.Delete("key1") {
		t.Error("Delete(existing) should return true")
	}
	if _, ok := m.Get("key1"); ok {
		t.Error("key1 should not exist after deletion")
	}
	if m.Delete("key1") {
		t.Error("second Delete should return false")
	}
}

func TestCountAndClear(t *testing.T) {
	m := New[string, int]()
	for i := 0; i < 50; i++ {
		m.Set(fmt.Sprintf("k%d", i), i)
	}

	if m.Count() != 50 {
		t.Errorf("Count() = %d, want 50", m.Count())
	}
	if dropped := m.Clear(); dropped != 50 {
		t.Errorf("Clear() = %d, want 50", dropped)
	}
	if m.Count() != 0 {
		t.Errorf("Count() after Clear() = %d, want 0", m.Count())
	}
}

func TestShardIndexStable(t *testing.T) {
	m := NewWithShards[string, int](8)
	for _, k := range []string{"", "a", "hello", "some/longer:key"} {
		i := m.shardIndex(k)
		if i < 0 || i >= 8 {
			t.Errorf("shardIndex(%q) = %d out of range", k, i)
		}
		if m.shardIndex(k) != i {
			t.Errorf("shardIndex(%q) not stable", k)
		}
	}
}

func TestStats(t *testing.T) {
	m := NewWithShards[string, int](4)
	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	stats := m.Stats()
	if len(stats) != 4 {
		t.Errorf("Stats() length = %d, want 4", len(stats))
	}

	total := 0
	for _, s := range stats {
		total += s.Count
	}
	if total != 100 {
		t.Errorf("total from stats = %d, want 100", total)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[string, int]()
	var wg sync.WaitGroup
	numGoroutines := 50
	numOps := 500

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for j := 0; j < numOps; j++ {
				key := fmt.Sprintf("%d-%d", base, j)
				m.Set(key, j)
				m.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if m.Count() != numGoroutines*numOps {
		t.Errorf("Count() = %d, want %d", m.Count(), numGoroutines*numOps)
	}
}
