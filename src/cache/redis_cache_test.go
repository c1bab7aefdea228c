package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefile-ai/casefile/src/config"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	cfg := &config.RedisConfig{
		Address:  mr.Addr(),
		Password: "",
		DB:       0,
		CacheTTL: time.Hour,
	}

	cache, err := NewRedisCache(cfg)
	require.NoError(t, err)

	return cache, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()
	fingerprint := "0a1b2c3d"

	answers := map[string]string{
		"Who is mentioned?":       "Dr. Chen",
		"What time is mentioned?": "11:47 PM",
	}

	err := cache.Set(ctx, fingerprint, answers)
	assert.NoError(t, err)

	retrieved, err := cache.Get(ctx, fingerprint)
	assert.NoError(t, err)
	assert.Equal(t, answers, retrieved)
}

func TestRedisCache_GetNonExistent(t *testing.T) {
	cache, mr := setupTestRedis(t)
	defer mr.Close()
	defer cache.Close()

	ctx := context.Background()

	retrieved, err := cache.Get(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestRedisCache_Expiration(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.RedisConfig{
		Address:  mr.Addr(),
		CacheTTL: 1 * time.Second,
	}

	cache, err := NewRedisCache(cfg)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	cache.Set(ctx, "fp", map[string]string{"Q?": "A"})

	mr.FastForward(2 * time.Second)

	retrieved, _ := cache.Get(ctx, "fp")
	assert.Nil(t, retrieved, "Key should be expired")
}

func TestRedisCache_ZeroTTLKeepsForever(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := &config.RedisConfig{
		Address: mr.Addr(),
	}

	cache, err := NewRedisCache(cfg)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()
	cache.Set(ctx, "fp", map[string]string{"Q?": "A"})

	mr.FastForward(240 * time.Hour)

	retrieved, err := cache.Get(ctx, "fp")
	assert.NoError(t, err)
	assert.NotNil(t, retrieved, "zero TTL means no expiry")
}

func BenchmarkRedisCache_Set(b *testing.B) {
	mr, _ := miniredis.Run()
	defer mr.Close()

	cfg := &config.RedisConfig{
		Address:  mr.Addr(),
		CacheTTL: time.Hour,
	}
	cache, _ := NewRedisCache(cfg)
	defer cache.Close()

	answers := map[string]string{"Q?": "Benchmark"}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Set(ctx, "bench", answers)
	}
}
