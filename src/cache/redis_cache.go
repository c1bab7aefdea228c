package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/casefile-ai/casefile/src/config"
)

const answerKeyPrefix = "answers:"

// RedisCache keeps answer sets across restarts for deployments that want a
// shared cache. A CacheTTL of zero keeps entries forever, matching the
// in-memory store's semantics.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.CacheTTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, fingerprint string) (map[string]string, error) {
	val, err := c.client.Get(ctx, answerKeyPrefix+fingerprint).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var answers map[string]string
	if err := json.Unmarshal([]byte(val), &answers); err != nil {
		return nil, err
	}

	return answers, nil
}

func (c *RedisCache) Set(ctx context.Context, fingerprint string, answers map[string]string) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, answerKeyPrefix+fingerprint, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client for direct access
func (c *RedisCache) GetClient() *redis.Client {
	return c.client
}
