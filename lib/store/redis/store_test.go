package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/hxslot/lib/store"
	"github.com/pthm/hxslot/lib/store/redis"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStorePutGet(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	key, err := s.Put(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, store.Key("token-1"), key)
	assert.True(t, mr.Exists("hxslot:snapshot:"+key))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "token-1", got)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStorePrefix(t *testing.T) {
	s, mr := newStore(t, redis.WithPrefix("app:"))

	key, err := s.Put(context.Background(), "token")
	require.NoError(t, err)
	assert.True(t, mr.Exists("app:"+key))
}

func TestRedisStoreTTL(t *testing.T) {
	s, mr := newStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	key, err := s.Put(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, time.Second, mr.TTL("hxslot:snapshot:"+key))

	mr.FastForward(2 * time.Second)

	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()

	_, err := s.Put(context.Background(), "token")
	assert.Error(t, err)
}
