package catalogclient

import "sync"

// TagProducts marks every cached product query; product mutations invalidate
// the whole tag, forcing a refetch on next access.
const TagProducts = "Products"

type cacheEntry struct {
	value any
	tags  []string
}

type tagCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

func newTagCache() *tagCache {
	return &tagCache{entries: map[string]cacheEntry{}}
}

func (c *tagCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (c *tagCache) set(key string, value any, tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, tags: tags}
}

func (c *tagCache) invalidate(tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		for _, t := range e.tags {
			if t == tag {
				delete(c.entries, key)
				break
			}
		}
	}
}
