package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "reports:"
	generationKey = "reports:generation"
	defaultTTL    = 15 * time.Minute
)

// Cache is a Redis-backed report result cache. Instead of deleting entries
// when data changes, every load bumps a generation counter that is folded
// into each key; entries from older generations are never read again and
// expire on their own.
type Cache struct {
	Rdb *redis.Client
	TTL time.Duration
}

// New builds a cache from a Redis URL. Empty URL returns nil: callers treat
// a nil cache as "query the store directly".
func New(redisURL string) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &Cache{Rdb: redis.NewClient(opt)}, nil
}

// Client exposes the underlying Redis client; nil when caching is disabled.
func (c *Cache) Client() *redis.Client {
	if c == nil {
		return nil
	}
	return c.Rdb
}

func (c *Cache) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return defaultTTL
}

// Key derives the cache key for a built query from its SQL, its bound
// arguments and the current load generation.
func (c *Cache) Key(ctx context.Context, sql string, args []interface{}) (string, error) {
	gen, err := c.Rdb.Get(ctx, generationKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s|%v", sql, args)
	return fmt.Sprintf("%s%d:%s", keyPrefix, gen, hex.EncodeToString(h.Sum(nil))[:32]), nil
}

// Get loads a cached value into dest; the bool reports a hit.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	b, err := c.Rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value under key with the cache TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Rdb.Set(ctx, key, b, c.ttl()).Err()
}

// Invalidate bumps the load generation so all existing entries go stale.
// Called after every successful load.
func (c *Cache) Invalidate(ctx context.Context) error {
	return c.Rdb.Incr(ctx, generationKey).Err()
}
