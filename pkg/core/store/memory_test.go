package store

import (
	"testing"
	"time"

	"statement_engine/pkg/core/facts"
)

// MemoryCache must satisfy the selector's cache contract.
var _ facts.FactCache = (*MemoryCache)(nil)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	key := facts.CacheKey("0000320193", "us-gaap:Revenues", "2024-12-31")

	if _, ok := cache.Get(key); ok {
		t.Fatal("empty cache reported a hit")
	}

	if err := cache.Set(key, []byte(`{"value": 41}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data, ok := cache.Get(key)
	if !ok || string(data) != `{"value": 41}` {
		t.Errorf("Get = %q, %v", data, ok)
	}

	if err := cache.Delete(key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("entry survived Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	cache.Set("short-lived", []byte("x"), 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, ok := cache.Get("short-lived"); ok {
		t.Error("entry outlived its TTL")
	}
}
