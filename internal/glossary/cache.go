package glossary

import (
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultTTL is how long a loaded glossary stays fresh.
const DefaultTTL = 300 * time.Second

type cacheEntry struct {
	data     Glossary
	loadedAt time.Time
}

// Cache is a TTL cache over a Source. A refresh replaces the whole entry
// under the lock, so readers never see a half-written glossary.
//
// A missing domain is deliberately never cached: every Get re-attempts the
// load until the domain starts existing. Cheap for the common case, but a
// permanently absent domain pays a load attempt per request.
type Cache struct {
	source Source
	ttl    time.Duration

	mu      sync.RWMutex
	entries map[string]cacheEntry

	now func() time.Time // overridable in tests
}

func NewCache(source Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		source:  source,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the glossary for a domain, loading it through the source on
// a miss or after TTL expiry. Load failures (including a missing domain)
// yield an empty glossary, never an error; only genuine failures are logged.
func (c *Cache) Get(domain string) Glossary {
	c.mu.RLock()
	entry, ok := c.entries[domain]
	c.mu.RUnlock()

	if ok && c.now().Sub(entry.loadedAt) < c.ttl {
		return entry.data
	}

	data, err := c.source.Load(domain)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("[glossary] no glossary for domain %q", domain)
		} else {
			log.Printf("[glossary] load failed for domain %q: %v", domain, err)
		}
		return nil
	}

	// Concurrent misses may race here; last writer wins, which is fine for
	// read-mostly glossary data.
	c.mu.Lock()
	c.entries[domain] = cacheEntry{data: data, loadedAt: c.now()}
	c.mu.Unlock()

	return data
}
