package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermochef/backend/internal/domain"
)

func TestNewRedisCache_InvalidURL(t *testing.T) {
	_, err := NewRedisCache(context.Background(), "http://not-redis", "test:")
	assert.Error(t, err)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0", "test:")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCacheUnavailable))
}

func TestRedisCache_ClosedClient(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	require.NoError(t, client.Close())
	cache := NewRedisCacheFromClient(client, "test:")

	_, err := cache.Get(context.Background(), "k")
	assert.True(t, errors.Is(err, domain.ErrCacheUnavailable))
	assert.False(t, errors.Is(err, domain.ErrCacheMiss))
}

// Runs against a real server when THERMOCHEF_TEST_REDIS_URL is set
func TestRedisCache_Integration(t *testing.T) {
	url := os.Getenv("THERMOCHEF_TEST_REDIS_URL")
	if url == "" {
		t.Skip("THERMOCHEF_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	cache, err := NewRedisCache(ctx, url, "thermochef-test:"+uuid.NewString()+":")
	require.NoError(t, err)
	defer cache.Close()

	_, err = cache.Get(ctx, "missing")
	assert.Equal(t, domain.ErrCacheMiss, err)

	require.NoError(t, cache.Set(ctx, "steps", []byte(`[{"instruction":"Mix"}]`), time.Minute))

	got, err := cache.Get(ctx, "steps")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"instruction":"Mix"}]`, string(got))

	exists, err := cache.Exists(ctx, "steps")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, cache.Delete(ctx, "steps"))
	exists, err = cache.Exists(ctx, "steps")
	require.NoError(t, err)
	assert.False(t, exists)
}
