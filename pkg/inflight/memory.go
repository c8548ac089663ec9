package inflight

import (
	"context"
	"sync"
	"time"
)

// sweepEvery bounds how many acquisitions pass between expiry sweeps.
const sweepEvery = 256

// MemoryGuard is a process-local Guard.
type MemoryGuard struct {
	mu    sync.Mutex
	held  map[string]claim
	now   func() time.Time
	calls int
}

type claim struct {
	token   string
	expires time.Time
}

// MemoryOption configures a MemoryGuard.
type MemoryOption func(*MemoryGuard)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(g *MemoryGuard) {
		if now != nil {
			g.now = now
		}
	}
}

// NewMemory returns an empty MemoryGuard.
func NewMemory(opts ...MemoryOption) *MemoryGuard {
	g := &MemoryGuard{
		held: make(map[string]claim),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *MemoryGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := checkArgs(key, ttl); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	g.calls++
	if g.calls%sweepEvery == 0 {
		for k, c := range g.held {
			if !now.Before(c.expires) {
				delete(g.held, k)
			}
		}
	}

	if c, ok := g.held[key]; ok && now.Before(c.expires) {
		return "", false, nil
	}
	token := newToken()
	g.held[key] = claim{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (g *MemoryGuard) Release(_ context.Context, key, token string) error {
	if err := checkRelease(key, token); err != nil {
		return err
	}
	g.mu.Lock()
	if c, ok := g.held[key]; ok && c.token == token {
		delete(g.held, key)
	}
	g.mu.Unlock()
	return nil
}

// Len returns the number of held keys, expired ones included until swept.
func (g *MemoryGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.held)
}
