package infra

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/olgasafonova/wikicell-mcp-server/metrics"
)

// Cache bounds to keep memory predictable under long-running sessions
const (
	DefaultMaxCacheEntries = 2000
	DefaultCacheCleanup    = 10 * time.Minute
)

// CacheEntry holds a cached value with its expiry and last-access time
type CacheEntry struct {
	Data       interface{}
	ExpiresAt  time.Time
	AccessedAt time.Time
	Key        string
	mu         sync.Mutex
}

// Cache is a TTL cache with LRU eviction once the entry limit is exceeded.
// Flattened row tables are small, so values are stored as-is without copying.
type Cache struct {
	entries    sync.Map // key (string) -> *CacheEntry
	count      int64
	maxEntries int64
	mu         sync.Mutex // serializes evictions

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewCache creates a cache holding at most maxEntries values.
// A background goroutine drops expired entries; call Close to stop it.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxCacheEntries
	}
	c := &Cache{
		maxEntries: int64(maxEntries),
		stopCh:     make(chan struct{}),
	}
	go c.cleanupLoop()
	return c
}

// Get returns the cached value for key if present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	if entry, ok := c.entries.Load(key); ok {
		ce := entry.(*CacheEntry)
		now := time.Now()
		if now.Before(ce.ExpiresAt) {
			ce.mu.Lock()
			ce.AccessedAt = now
			ce.mu.Unlock()
			return ce.Data, true
		}
		c.entries.Delete(key)
		atomic.AddInt64(&c.count, -1)
	}
	return nil, false
}

// Set stores data under key for the given TTL.
func (c *Cache) Set(key string, data interface{}, ttl time.Duration) {
	now := time.Now()

	_, existed := c.entries.Load(key)

	c.entries.Store(key, &CacheEntry{
		Data:       data,
		ExpiresAt:  now.Add(ttl),
		AccessedAt: now,
		Key:        key,
	})

	if !existed {
		newCount := atomic.AddInt64(&c.count, 1)
		metrics.SetCacheSize(newCount)
		if newCount > c.maxEntries {
			// Evict asynchronously so Set never blocks a tool call.
			go c.evictLRU(int(newCount-c.maxEntries) + int(c.maxEntries/10))
		}
	}
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	if _, existed := c.entries.LoadAndDelete(key); existed {
		metrics.SetCacheSize(atomic.AddInt64(&c.count, -1))
	}
}

// Size returns the current entry count.
func (c *Cache) Size() int64 {
	return atomic.LoadInt64(&c.count)
}

// Close stops the background cleanup goroutine.
func (c *Cache) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(DefaultCacheCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup drops expired entries and evicts LRU entries if still over limit.
func (c *Cache) cleanup() {
	now := time.Now()
	var expired int64

	c.entries.Range(func(key, value interface{}) bool {
		ce := value.(*CacheEntry)
		if now.After(ce.ExpiresAt) {
			c.entries.Delete(key)
			expired++
		}
		return true
	})

	if expired > 0 {
		metrics.SetCacheSize(atomic.AddInt64(&c.count, -expired))
	}

	current := atomic.LoadInt64(&c.count)
	if current > c.maxEntries {
		c.evictLRU(int(current-c.maxEntries) + int(c.maxEntries/10))
	}
}

// evictLRU removes the count least recently used entries.
func (c *Cache) evictLRU(count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	type entryInfo struct {
		key        string
		accessedAt time.Time
	}
	var entries []entryInfo

	c.entries.Range(func(key, value interface{}) bool {
		ce := value.(*CacheEntry)
		ce.mu.Lock()
		accessedAt := ce.AccessedAt
		ce.mu.Unlock()
		entries = append(entries, entryInfo{key: key.(string), accessedAt: accessedAt})
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].accessedAt.Before(entries[j].accessedAt)
	})

	evicted := 0
	for _, entry := range entries {
		if evicted >= count {
			break
		}
		c.entries.Delete(entry.key)
		evicted++
	}

	if evicted > 0 {
		metrics.CacheEvictions.Add(float64(evicted))
		metrics.SetCacheSize(atomic.AddInt64(&c.count, -int64(evicted)))
	}
}
