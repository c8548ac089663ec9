package inflight_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyblinds/site/pkg/inflight"
	"github.com/luckyblinds/site/pkg/redis"
)

// TestRedisGuard runs against a real server when REDIS_URL is set.
func TestRedisGuard(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1, ConnectTimeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	g := inflight.NewRedis(client, inflight.WithPrefix("test:inflight:"))
	key := uuid.NewString()
	t.Cleanup(func() { _ = client.Del(ctx, "test:inflight:"+key).Err() })

	token, ok, err := g.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = g.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// A release with someone else's token leaves the claim alone.
	require.NoError(t, g.Release(ctx, key, uuid.NewString()))
	_, ok, err = g.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, g.Release(ctx, key, token))
	_, ok, err = g.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGuard_InvalidArgs(t *testing.T) {
	t.Parallel()

	g := inflight.NewRedis(nil)
	_, _, err := g.Acquire(context.Background(), "", time.Second)
	assert.ErrorIs(t, err, inflight.ErrEmptyKey)
	_, _, err = g.Acquire(context.Background(), "k", -time.Second)
	assert.ErrorIs(t, err, inflight.ErrInvalidTTL)
	assert.ErrorIs(t, g.Release(context.Background(), "", "t"), inflight.ErrEmptyKey)
	assert.ErrorIs(t, g.Release(context.Background(), "k", ""), inflight.ErrEmptyToken)
}
