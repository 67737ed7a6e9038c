package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/use-agent/prospects/models"
)

// entry holds a cached record with its creation timestamp.
type entry struct {
	record    models.PlayerRecord
	createdAt time.Time
}

// Cache is a simple in-memory cache for assembled player records.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	done       chan struct{}
	closeOnce  sync.Once
}

// New creates a new Cache with the given maximum number of entries.
// A background goroutine runs every 5 minutes to evict entries older than
// ttl until Close is called.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
		done:       make(chan struct{}),
	}

	go c.cleanupLoop()
	return c
}

// Key generates a cache key from every field of a roster row, so a changed
// roster value never returns a record assembled from the old one.
func Key(row models.RosterRow) string {
	data, err := sonic.ConfigStd.Marshal(row)
	if err != nil {
		data = []byte(row.PlayerURL)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached record for row if it exists and is younger than
// maxAge. If maxAge <= 0, no cache lookup is performed.
func (c *Cache) Get(row models.RosterRow, maxAge time.Duration) (models.PlayerRecord, bool) {
	if maxAge <= 0 {
		return models.PlayerRecord{}, false
	}

	c.mu.RLock()
	e, ok := c.store[Key(row)]
	c.mu.RUnlock()

	if !ok {
		return models.PlayerRecord{}, false
	}

	age := c.now().Sub(e.createdAt)
	if age > maxAge || (c.ttl > 0 && age > c.ttl) {
		return models.PlayerRecord{}, false
	}

	return own(e.record), true
}

// Set stores a record in the cache. If the cache is at capacity,
// a random entry is evicted to make room.
func (c *Cache) Set(row models.RosterRow, rec models.PlayerRecord) {
	if c.maxEntries <= 0 {
		return
	}
	key := Key(row)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if _, exists := c.store[key]; !exists && len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		record:    own(rec),
		createdAt: c.now(),
	}
}

// Len returns the number of cached records.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Close stops the cleanup goroutine.
func (c *Cache) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// own gives rec its own season slice so cached and returned records never
// alias.
func own(rec models.PlayerRecord) models.PlayerRecord {
	rec.PlayerStatistics = slices.Clone(rec.PlayerStatistics)
	return rec
}

// cleanupLoop evicts entries older than the TTL every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.evictExpired()
		}
	}
}

func (c *Cache) evictExpired() {
	if c.ttl <= 0 {
		return
	}
	cutoff := c.now().Add(-c.ttl)
	c.mu.Lock()
	for k, e := range c.store {
		if e.createdAt.Before(cutoff) {
			delete(c.store, k)
		}
	}
	c.mu.Unlock()
}
