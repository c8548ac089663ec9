package inflight

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedis wraps failures reported by the Redis client.
var ErrRedis = errors.New("inflight: redis error")

const defaultPrefix = "inflight:"

// releaseScript deletes the key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard is a Guard shared by every instance using the same Redis.
type RedisGuard struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures a RedisGuard.
type RedisOption func(*RedisGuard)

// WithPrefix sets the key namespace. Defaults to "inflight:".
func WithPrefix(prefix string) RedisOption {
	return func(g *RedisGuard) {
		g.prefix = prefix
	}
}

// NewRedis returns a Guard backed by client.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *RedisGuard {
	g := &RedisGuard{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Acquire uses SET NX PX so the check and the claim are one atomic step.
// The stored value is the claim's token.
func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := checkArgs(key, ttl); err != nil {
		return "", false, err
	}
	token := newToken()
	ok, err := g.client.SetNX(ctx, g.prefix+key, token, ttl).Result()
	if err != nil {
		return "", false, errors.Join(ErrRedis, err)
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

// Release compares and deletes in one script so an expired claim cannot
// free the key for whoever took it over.
func (g *RedisGuard) Release(ctx context.Context, key, token string) error {
	if err := checkRelease(key, token); err != nil {
		return err
	}
	if err := releaseScript.Run(ctx, g.client, []string{g.prefix + key}, token).Err(); err != nil {
		return errors.Join(ErrRedis, err)
	}
	return nil
}
