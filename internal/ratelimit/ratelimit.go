package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

// Limiter enforces a minimum delay between consecutive requests to one
// provider. Each provider gets its own Limiter, so siblings fetched in the
// same fan-out never wait on each other.
type Limiter struct {
	mu       sync.Mutex
	lastCall time.Time
	minDelay time.Duration
}

// NewLimiter creates a limiter that spaces requests at least minDelay apart.
func NewLimiter(minDelay time.Duration) *Limiter {
	return &Limiter{minDelay: minDelay}
}

// Wait blocks until enough time has passed since the last request.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()

	if l.lastCall.IsZero() || now.Sub(l.lastCall) >= l.minDelay {
		l.lastCall = now
		l.mu.Unlock()
		return nil
	}

	// Reserve the next slot before releasing the lock so concurrent callers
	// queue behind each other instead of firing together.
	next := l.lastCall.Add(l.minDelay)
	l.lastCall = next
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Until(next)):
	}
	return nil
}

// RateLimitedProvider is a decorator that waits on its limiter before
// delegating to the wrapped Provider.
type RateLimitedProvider struct {
	inner   model.Provider
	limiter *Limiter
}

// NewRateLimitedProvider wraps a Provider with its own limiter.
func NewRateLimitedProvider(inner model.Provider, minDelay time.Duration) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: NewLimiter(minDelay),
	}
}

// Name returns the wrapped provider's name.
func (p *RateLimitedProvider) Name() string { return p.inner.Name() }

// FetchRaw waits for the limiter, then delegates to the wrapped provider.
func (p *RateLimitedProvider) FetchRaw(ctx context.Context, keywords []string, location string, maxResults int) ([]model.RawListing, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait for %s: %w", p.inner.Name(), err)
	}
	return p.inner.FetchRaw(ctx, keywords, location, maxResults)
}
