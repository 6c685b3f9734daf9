package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, zap.NewNop(), "learnfeed"), mr
}

func TestCache_GetMissingKey(t *testing.T) {
	cache, _ := setupTestCache(t)

	data, err := cache.Get(context.Background(), "feed:u1:long:10")
	require.NoError(t, err)
	assert.Nil(t, data, "missing key should return nil, not an error")
}

func TestCache_SetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	err := cache.Set(ctx, "feed:u1:long:10", []byte(`{"videos":[]}`), time.Minute)
	require.NoError(t, err)

	data, err := cache.Get(ctx, "feed:u1:long:10")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"videos":[]}`), data)
}

func TestCache_KeysAreNamespaced(t *testing.T) {
	cache, mr := setupTestCache(t)

	err := cache.Set(context.Background(), "feed:u1:long:10", []byte("x"), time.Minute)
	require.NoError(t, err)

	// The raw Redis key carries the configured prefix
	assert.True(t, mr.Exists("learnfeed:feed:u1:long:10"))
}

func TestCache_Delete(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "feed:u1:long:10", []byte("x"), time.Minute))
	require.NoError(t, cache.Delete(ctx, "feed:u1:long:10"))

	data, err := cache.Get(ctx, "feed:u1:long:10")
	require.NoError(t, err)
	assert.Nil(t, data)

	// Deleting a missing key is a no-op
	assert.NoError(t, cache.Delete(ctx, "feed:u1:long:10"))
}

func TestCache_DeleteByPrefix(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "feed:u1:long:10", []byte("a"), time.Minute))
	require.NoError(t, cache.Set(ctx, "feed:u1:short:5", []byte("b"), time.Minute))
	require.NoError(t, cache.Set(ctx, "feed:u2:long:10", []byte("c"), time.Minute))

	require.NoError(t, cache.DeleteByPrefix(ctx, "feed:u1:"))

	for _, key := range []string{"feed:u1:long:10", "feed:u1:short:5"} {
		data, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, data, "key %s should be invalidated", key)
	}

	data, err := cache.Get(ctx, "feed:u2:long:10")
	require.NoError(t, err)
	assert.NotNil(t, data, "other learners' cached feeds must survive")
}

func TestCache_DeleteByPrefix_NoMatches(t *testing.T) {
	cache, _ := setupTestCache(t)

	err := cache.DeleteByPrefix(context.Background(), "feed:nobody:")
	assert.NoError(t, err)
}

func TestCache_Expiry(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "feed:u1:long:10", []byte("x"), time.Minute))

	mr.FastForward(2 * time.Minute)

	data, err := cache.Get(ctx, "feed:u1:long:10")
	require.NoError(t, err)
	assert.Nil(t, data, "expired entry should read as a miss")
}
