package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// PageCachePrefix is the key prefix for rendered pages
	PageCachePrefix = "page:"

	// clearScanCount is the SCAN batch size used by Clear
	clearScanCount = 100

	// memorySweepInterval bounds how often Set scans for expired entries
	memorySweepInterval = time.Minute
)

// Entry is a rendered response body and the headers needed to replay it.
type Entry struct {
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// PageCache stores rendered pages for a limited time.
// Using an interface enables testing with the in-memory backend.
type PageCache interface {
	// Get returns the cached entry; found=false on a miss or expired entry.
	Get(ctx context.Context, key string) (entry Entry, found bool, err error)

	// Set stores the entry for ttl.
	Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error

	// Clear drops every cached page.
	Clear(ctx context.Context) error
}

// RedisPageCache implements PageCache with plain Redis string keys.
type RedisPageCache struct {
	client *redis.Client
}

// NewRedisPageCache creates a PageCache backed by Redis.
func NewRedisPageCache(client *redis.Client) PageCache {
	return &RedisPageCache{client: client}
}

func pageKey(key string) string {
	return PageCachePrefix + key
}

func (c *RedisPageCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := c.client.Get(ctx, pageKey(key)).Bytes()
	if err == redis.Nil {
		return Entry{}, false, nil
	}
	if err != nil {
		log.Printf("[PageCache] Get FAILED: key=%s err=%v", key, err)
		return Entry{}, false, fmt.Errorf("get page: %w", err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return Entry{}, false, fmt.Errorf("decode page: %w", err)
	}
	return entry, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}

	if err := c.client.Set(ctx, pageKey(key), data, ttl).Err(); err != nil {
		log.Printf("[PageCache] Set FAILED: key=%s err=%v", key, err)
		return fmt.Errorf("set page: %w", err)
	}
	return nil
}

// Clear walks the prefix with SCAN rather than KEYS so a large cache does not
// block the server.
func (c *RedisPageCache) Clear(ctx context.Context) error {
	startTime := time.Now()
	var cursor uint64
	var removed int64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, PageCachePrefix+"*", clearScanCount).Result()
		if err != nil {
			log.Printf("[PageCache] Clear FAILED: err=%v", err)
			return fmt.Errorf("scan pages: %w", err)
		}
		if len(keys) > 0 {
			n, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				return fmt.Errorf("delete pages: %w", err)
			}
			removed += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	log.Printf("[PageCache] Clear OK: removed=%d duration=%v", removed, time.Since(startTime))
	return nil
}

// MemoryPageCache is a process-local PageCache for single-instance deployments.
type MemoryPageCache struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// NewMemoryPageCache creates an empty in-process cache.
func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// WithClock replaces the time source; used by tests to expire entries.
func (c *MemoryPageCache) WithClock(now func() time.Time) *MemoryPageCache {
	c.now = now
	return c
}

func (c *MemoryPageCache) Get(_ context.Context, key string) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return Entry{}, false, nil
	}
	return e.entry, true, nil
}

func (c *MemoryPageCache) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("page cache ttl must be positive")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= memorySweepInterval {
		c.sweep(now)
	}

	body := make([]byte, len(entry.Body))
	copy(body, entry.Body)
	c.entries[key] = memoryEntry{
		entry:     Entry{ContentType: entry.ContentType, Body: body},
		expiresAt: now.Add(ttl),
	}
	return nil
}

// sweep drops every expired entry. Caller holds mu.
func (c *MemoryPageCache) sweep(now time.Time) {
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.lastSweep = now
}

func (c *MemoryPageCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
	return nil
}
