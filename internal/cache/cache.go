package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const (
	KeyPatients     = "clinic:api:patients"
	KeyAppointments = "clinic:api:appointments"
)

// Cache stores rendered API dumps in Redis. A nil *Cache is valid and
// behaves as an always-empty cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redisURL. An empty URL disables caching and returns nil.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Cache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "invalid REDIS_URL")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "failed to ping redis")
	}

	log.Printf("response cache enabled (ttl=%s)", ttl)
	return &Cache{client: client, ttl: ttl}, nil
}

func (c *Cache) Enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached payload and whether it was found.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", key, err)
		}
		return nil, false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key string, payload []byte) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}

// Invalidate drops both API dumps. Called after every write.
func (c *Cache) Invalidate(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, KeyPatients, KeyAppointments).Err(); err != nil {
		log.Printf("cache invalidate: %v", err)
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
