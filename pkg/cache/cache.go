// Package cache is an in-process key-value store with a global TTL,
// backing the notification service. Entries expire lazily on read and a
// background sweeper reclaims the rest on a fixed cadence.
package cache

import (
	"log"
	"sync"
	"time"
)

const (
	DefaultTTL           = 30 * 24 * time.Hour
	DefaultSweepInterval = time.Hour
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Stats reports cache health counters.
type Stats struct {
	Keys    int    `json:"keys"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Expired uint64 `json:"expired"`
}

// Cache is a TTL key-value store safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration

	hits    uint64
	misses  uint64
	expired uint64

	done chan struct{}
	once sync.Once
}

// New creates a cache. A sweepInterval of zero disables the sweeper
// (expiry then happens only lazily on Get).
func New(ttl, sweepInterval time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go c.sweep(sweepInterval)
	}
	return c
}

// Get returns the value for key, or false if missing or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		c.expired++
		c.misses++
		return nil, false
	}
	c.hits++
	return e.value, true
}

// Set stores value under key with the cache-wide TTL.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes key. Returns whether a live entry was removed.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Flush drops all entries.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Keys:    len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		Expired: c.expired,
	}
}

// Close stops the sweeper goroutine.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	var removed int
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			c.expired++
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[Cache] Sweep removed %d expired entries, %d remain", removed, len(c.entries))
	}
}
