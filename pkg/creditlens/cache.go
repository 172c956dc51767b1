package creditlens

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// responseCache is a small TTL cache for provider responses, keyed by a
// stable request fingerprint. The clock is injected for tests. A zero or
// negative TTL disables caching entirely.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

func newResponseCache(ttl time.Duration, now func() time.Time) *responseCache {
	if now == nil {
		now = time.Now
	}
	return &responseCache{
		ttl:     ttl,
		entries: map[string]cacheEntry{},
		now:     now,
	}
}

func (c *responseCache) get(key string) (interface{}, bool) {
	if c == nil || c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *responseCache) set(key string, value interface{}) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
}

// fingerprint derives a stable cache key from request parameters without
// keeping the raw access token around in map keys
func fingerprint(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
