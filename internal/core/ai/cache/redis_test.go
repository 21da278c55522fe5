package cache

import (
	"context"
	"testing"
	"time"

	"recipe-assistant/internal/infrastructure/config"
	"recipe-assistant/internal/pkg/common"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(config.CacheConfig{
		Enabled:   true,
		Backend:   config.CacheBackendRedis,
		RedisAddr: mr.Addr(),
		TTL:       time.Minute,
		KeyPrefix: "test:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_SetGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr := newTestRedis(t)

	_, err := store.Get(ctx, "prompt", "")
	assert.ErrorIs(t, err, common.ErrCacheMiss)

	require.NoError(t, store.Set(ctx, "prompt", "", "answer"))
	assert.True(t, mr.Exists("test:"+Key("prompt", "")))

	got, err := store.Get(ctx, "prompt", "")
	require.NoError(t, err)
	assert.Equal(t, "answer", got)

	stats := store.Stats()
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, config.CacheBackendRedis, stats["backend"])
}

func TestRedisStore_TTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store, mr := newTestRedis(t)

	require.NoError(t, store.Set(ctx, "p", "img", "v"))
	assert.Equal(t, time.Minute, mr.TTL("test:"+Key("p", "img")))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "p", "img")
	assert.ErrorIs(t, err, common.ErrCacheMiss)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	t.Parallel()

	_, err := NewRedisStore(config.CacheConfig{RedisAddr: "127.0.0.1:1", TTL: time.Minute})
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	store, err := NewStore(config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = NewStore(config.CacheConfig{Enabled: true, MaxSize: 5, TTL: time.Minute})
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.IsType(t, &CacheManager{}, store)
	_ = store.Close()

	mr := miniredis.RunT(t)
	store, err = NewStore(config.CacheConfig{Enabled: true, Backend: config.CacheBackendRedis, RedisAddr: mr.Addr(), TTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	_ = store.Close()

	store, err = NewStore(config.CacheConfig{Enabled: true, Backend: "memcached"})
	assert.Error(t, err)
	assert.Nil(t, store)
}
