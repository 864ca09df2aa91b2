package store

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache wraps go-cache behind the byte-slice KV interface the
// fact selector expects. TTL is per entry; the janitor sweeps expired
// keys in the background.
type MemoryCache struct {
	inner *gocache.Cache
}

// NewMemoryCache builds a cache with the given default TTL and a
// cleanup interval of twice the TTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{inner: gocache.New(defaultTTL, 2*defaultTTL)}
}

func (m *MemoryCache) Get(key string) ([]byte, bool) {
	v, ok := m.inner.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

func (m *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.inner.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) Delete(key string) error {
	m.inner.Delete(key)
	return nil
}
