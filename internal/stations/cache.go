package stations

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VirenMohindra/citibike-sub002/internal/models"
)

const cacheKey = "stations:index"

// Cache keeps the flattened station feed around so the feed is only refetched
// when the TTL expires. Station topology rarely changes, so the default TTL is
// a day. A Redis client is optional; without one the in-process copy is the
// only cache layer.
type Cache struct {
	redis *redis.Client
	ttl   time.Duration

	mu        sync.Mutex
	cached    []models.MinimalStation
	fetchedAt time.Time
}

// NewCache creates a station cache. rdb may be nil.
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{redis: rdb, ttl: ttl}
}

// GetOrFetch returns the cached station list, consulting the in-process copy,
// then Redis, then the fetch function. Cache failures degrade to a fetch and
// are logged, never returned.
func (c *Cache) GetOrFetch(ctx context.Context, fetch func(context.Context) ([]models.MinimalStation, error)) ([]models.MinimalStation, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		list := c.cached
		c.mu.Unlock()
		return list, nil
	}
	c.mu.Unlock()

	if list, ok := c.fromRedis(ctx); ok {
		c.store(list)
		return list, nil
	}

	list, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.store(list)
	c.toRedis(ctx, list)
	return list, nil
}

// Invalidate drops the cached copy so the next read refetches the feed.
func (c *Cache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.cached = nil
	c.fetchedAt = time.Time{}
	c.mu.Unlock()

	if c.redis != nil {
		if err := c.redis.Del(ctx, cacheKey).Err(); err != nil {
			log.Printf("[StationCache] Failed to invalidate redis key: %v", err)
		}
	}
}

func (c *Cache) store(list []models.MinimalStation) {
	c.mu.Lock()
	c.cached = list
	c.fetchedAt = time.Now()
	c.mu.Unlock()
}

func (c *Cache) fromRedis(ctx context.Context) ([]models.MinimalStation, bool) {
	if c.redis == nil {
		return nil, false
	}
	payload, err := c.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[StationCache] Redis read failed: %v", err)
		}
		return nil, false
	}
	var list []models.MinimalStation
	if err := json.Unmarshal(payload, &list); err != nil {
		log.Printf("[StationCache] Failed to decode cached stations: %v", err)
		return nil, false
	}
	return list, true
}

func (c *Cache) toRedis(ctx context.Context, list []models.MinimalStation) {
	if c.redis == nil {
		return
	}
	payload, err := json.Marshal(list)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		log.Printf("[StationCache] Redis write failed: %v", err)
	}
}
