package creditlens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseCache_GetSet(t *testing.T) {
	now := testNow
	cache := newResponseCache(5*time.Minute, func() time.Time { return now })

	_, ok := cache.get("key")
	assert.False(t, ok)

	cache.set("key", "value")
	got, ok := cache.get("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestResponseCache_Expiry(t *testing.T) {
	now := testNow
	cache := newResponseCache(5*time.Minute, func() time.Time { return now })

	cache.set("key", "value")

	now = now.Add(5 * time.Minute)
	_, ok := cache.get("key")
	assert.True(t, ok, "entry still valid at exactly the TTL")

	now = now.Add(time.Second)
	_, ok = cache.get("key")
	assert.False(t, ok, "entry expired past the TTL")

	// Stale entries are dropped on read
	now = testNow
	_, ok = cache.get("key")
	assert.False(t, ok)
}

func TestResponseCache_DisabledTTL(t *testing.T) {
	for _, ttl := range []time.Duration{0, -1} {
		cache := newResponseCache(ttl, nil)
		cache.set("key", "value")
		_, ok := cache.get("key")
		assert.False(t, ok)
	}
}

func TestResponseCache_NilReceiver(t *testing.T) {
	var cache *responseCache
	assert.NotPanics(t, func() {
		cache.set("key", "value")
		_, ok := cache.get("key")
		assert.False(t, ok)
	})
}

func TestFingerprint(t *testing.T) {
	a := fingerprint("card_data", "token", "30")
	b := fingerprint("card_data", "token", "30")
	assert.Equal(t, a, b)

	// Joining with a separator keeps adjacent parts from colliding
	assert.NotEqual(t, fingerprint("ab", "c"), fingerprint("a", "bc"))

	assert.NotEqual(t, a, fingerprint("card_data", "token", "60"))
	assert.Len(t, a, 64)
}
