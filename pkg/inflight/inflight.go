// Package inflight marks keys as busy for a bounded time. The contact
// handler uses it to drop duplicate submissions of the same form while the
// first one is still being sent.
package inflight

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyKey   = errors.New("inflight: empty key")
	ErrInvalidTTL = errors.New("inflight: ttl must be positive")
	ErrEmptyToken = errors.New("inflight: empty token")
)

// Guard is a set of busy keys with per-key expiry.
type Guard interface {
	// Acquire marks key busy for ttl and returns the token that owns the
	// claim. It reports false when key is already held and not yet expired.
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Release frees key if it is still held under token. A claim that
	// expired and was taken by someone else stays held. Releasing a free
	// key is not an error.
	Release(ctx context.Context, key, token string) error
}

func newToken() string {
	return uuid.NewString()
}

func checkArgs(key string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl <= 0 {
		return ErrInvalidTTL
	}
	return nil
}

func checkRelease(key, token string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if token == "" {
		return ErrEmptyToken
	}
	return nil
}

var (
	_ Guard = (*MemoryGuard)(nil)
	_ Guard = (*RedisGuard)(nil)
)
