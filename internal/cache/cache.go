package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// genKey holds a generation counter; bumping it on any product or inventory
// mutation orphans every previously written catalog entry, which then ages
// out via TTL.
const genKey = "catalog:gen"

// Cache is a best-effort Redis cache for catalog query results. Every
// operation swallows Redis failures: a broken cache degrades to a miss,
// never to a request failure.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Lookup returns the cached payload for the given canonical query string.
func (c *Cache) Lookup(queryKey string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key, err := c.key(ctx, queryKey)
	if err != nil {
		return nil, false
	}
	payload, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

// Store writes the payload for the given canonical query string.
func (c *Cache) Store(queryKey string, payload []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	key, err := c.key(ctx, queryKey)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("catalog cache: store failed: %v", err)
	}
}

// Invalidate bumps the catalog generation.
func (c *Cache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.rdb.Incr(ctx, genKey).Err(); err != nil {
		log.Printf("catalog cache: invalidate failed: %v", err)
	}
}

func (c *Cache) key(ctx context.Context, queryKey string) (string, error) {
	gen, err := c.rdb.Get(ctx, genKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("catalog:%d:%s", gen, queryKey), nil
}
