package cache

import (
	"context"
	"sync"
)

// MemoryCache is the default answer store: entries live for the process
// lifetime with no eviction and no TTL. Unbounded growth is an accepted
// trade-off for a bounded investigation corpus.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]map[string]string),
	}
}

// Get returns (nil, nil) on a miss. The returned mapping is a copy.
func (c *MemoryCache) Get(ctx context.Context, fingerprint string) (map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[fingerprint]
	if !ok {
		return nil, nil
	}
	return copyAnswers(entry), nil
}

func (c *MemoryCache) Set(ctx context.Context, fingerprint string, answers map[string]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fingerprint] = copyAnswers(answers)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}

// Len reports how many answer sets are cached.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func copyAnswers(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
