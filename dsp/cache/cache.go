package cache

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-synth/dsp/buffer"
	"golang.org/x/sync/singleflight"
)

// RenderFunc produces the buffer for a missing key.
type RenderFunc func() (*buffer.Audio, error)

// Stats is a snapshot of cache activity.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	Renders uint64
}

// Cache maps canonical keys to rendered buffers. The zero value is ready to use.
// Stored buffers are shared between callers and must not be modified.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*buffer.Audio
	flight  singleflight.Group

	hits    atomic.Uint64
	misses  atomic.Uint64
	renders atomic.Uint64
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*buffer.Audio)}
}

// Get returns the buffer stored under key, if any.
func (c *Cache) Get(key string) (*buffer.Audio, bool) {
	c.mu.RLock()
	b, ok := c.entries[key]
	c.mu.RUnlock()
	return b, ok
}

// Set stores b under key, replacing any previous entry.
func (c *Cache) Set(key string, b *buffer.Audio) {
	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[string]*buffer.Audio)
	}
	c.entries[key] = b
	c.mu.Unlock()
}

// Resolve returns the buffer stored under key, calling render to produce
// and store it on a miss. Concurrent misses on the same key share one call
// to render. A failed render stores nothing and its error is returned to
// every waiting caller. The rendered buffer's ID is set to key.
func (c *Cache) Resolve(key string, render RenderFunc) (*buffer.Audio, error) {
	if b, ok := c.Get(key); ok {
		c.hits.Add(1)
		return b, nil
	}
	c.misses.Add(1)

	v, err, _ := c.flight.Do(key, func() (any, error) {
		// A flight that finished between Get and Do already stored the entry.
		if b, ok := c.Get(key); ok {
			return b, nil
		}

		b, err := render()
		if err != nil {
			return nil, err
		}
		c.renders.Add(1)

		b.ID = key
		c.Set(key, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*buffer.Audio), nil
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Keys returns every stored key in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// Reset drops every entry and clears the counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*buffer.Audio)
	c.mu.Unlock()

	c.hits.Store(0)
	c.misses.Store(0)
	c.renders.Store(0)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Renders: c.renders.Load(),
	}
}
