package quizclient

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	body    []byte
	fetched time.Time
}

// responseCache holds raw GET bodies keyed by path and encoded query. gen
// advances on every invalidation so a fetch that raced one is not stored.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	gen     uint64
	stale   time.Duration
	now     func() time.Time
}

func newResponseCache(stale time.Duration, now func() time.Time) *responseCache {
	return &responseCache{entries: map[string]cacheEntry{}, stale: stale, now: now}
}

func (c *responseCache) get(key string) ([]byte, bool) {
	if c.stale <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.fetched) >= c.stale {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

// generation is read before a fetch and handed back to put.
func (c *responseCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// put stores body unless an invalidation happened since gen was read.
func (c *responseCache) put(key string, body []byte, gen uint64) {
	if c.stale <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.entries[key] = cacheEntry{body: body, fetched: c.now()}
}

// invalidate drops every key starting with one of prefixes.
func (c *responseCache) invalidate(prefixes ...string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++

	dropped := 0
	for key := range c.entries {
		for _, p := range prefixes {
			if strings.HasPrefix(key, p) {
				delete(c.entries, key)
				dropped++
				break
			}
		}
	}
	return dropped
}

func (c *responseCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = map[string]cacheEntry{}
}
