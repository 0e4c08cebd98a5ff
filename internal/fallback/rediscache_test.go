// internal/fallback/rediscache_test.go
package fallback

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer/internal/common/config"
	"route-optimizer/internal/common/database"
)

func newTestRedisCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client, ttl), mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestRedisCache(t, time.Minute)

	got, err := cache.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Put(ctx, "k1", sampleResult(250)))

	got, err = cache.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 250.0, got.Routes.Shortest.DistanceKm)

	size, err := cache.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestRedisCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, 30*time.Second)

	require.NoError(t, cache.Put(ctx, "k1", sampleResult(50)))

	mr.FastForward(31 * time.Second)

	got, err := cache.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisCache_CorruptEntryBehavesLikeMiss(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, mr.Set("route:bad", "not json"))

	got, err := cache.Get(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.False(t, mr.Exists("route:bad"), "corrupt entry is removed")
}

func TestRedisCache_Clear(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestRedisCache(t, time.Minute)

	require.NoError(t, cache.Put(ctx, "k1", sampleResult(10)))
	require.NoError(t, cache.Put(ctx, "k2", sampleResult(20)))

	// Keys outside the route prefix are left alone.
	require.NoError(t, mr.Set("other", "value"))

	require.NoError(t, cache.Clear(ctx))

	size, err := cache.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, size)
	assert.True(t, mr.Exists("other"))
}

func TestRedisCache_GetPropagatesBackendErrors(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	cache := NewRedisCache(&database.RedisClient{Client: db}, time.Minute)

	mock.ExpectGet("route:k1").SetErr(fmt.Errorf("connection reset"))

	_, err := cache.Get(ctx, "k1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get")
	assert.NoError(t, mock.ExpectationsWereMet())
}
