package retry

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/engine"
	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

// Matcher runs a match request. *engine.Engine satisfies it.
type Matcher interface {
	MatchJobs(ctx context.Context, q engine.Query) engine.Outcome
}

// RetryMatcher is a decorator that re-runs transient match failures with
// exponential backoff and jitter. The engine never retries on its own; this
// is the invoking layer's policy.
type RetryMatcher struct {
	inner      Matcher
	maxRetries int
	baseDelay  time.Duration
	logger     *slog.Logger
}

// NewRetryMatcher wraps a Matcher with retry logic.
// maxRetries is the number of additional attempts after the first failure (default: 2).
// baseDelay is the delay before the first retry (default: 5s), doubled on each subsequent retry.
func NewRetryMatcher(inner Matcher, maxRetries int, baseDelay time.Duration, logger *slog.Logger) *RetryMatcher {
	return &RetryMatcher{
		inner:      inner,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
		logger:     logger,
	}
}

// MatchJobs runs the query, retrying ProviderError and EmptyResultError
// outcomes. InputError is returned immediately. If ctx is cancelled during a
// backoff, the last outcome is returned.
func (m *RetryMatcher) MatchJobs(ctx context.Context, q engine.Query) engine.Outcome {
	out := m.inner.MatchJobs(ctx, q)
	if !isRetryable(out) {
		return out
	}

	for attempt := 1; attempt <= m.maxRetries; attempt++ {
		delay := m.backoffDelay(attempt, out.Err())

		m.logger.Warn("retrying after transient match failure",
			"attempt", attempt,
			"max_retries", m.maxRetries,
			"delay", delay,
			"error_kind", out.ErrorKind,
		)

		select {
		case <-ctx.Done():
			return out
		case <-time.After(delay):
		}

		out = m.inner.MatchJobs(ctx, q)
		if !isRetryable(out) {
			return out
		}
	}

	return out
}

// backoffDelay computes the delay for a given attempt with ±30% jitter.
// If a provider reported a Retry-After duration (HTTP 429), that takes precedence.
func (m *RetryMatcher) backoffDelay(attempt int, err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > 0 {
		return httpErr.RetryAfter
	}

	// Exponential: baseDelay * 2^(attempt-1)
	delay := m.baseDelay
	for i := 1; i < attempt; i++ {
		delay *= 2
	}

	// Apply ±30% jitter
	jitter := float64(delay) * 0.3
	delay = time.Duration(float64(delay) + (rand.Float64()*2-1)*jitter)

	return delay
}

// isRetryable reports whether the outcome is a transient failure worth retrying.
func isRetryable(out engine.Outcome) bool {
	if out.Success {
		return false
	}

	var matchErr *model.MatchError
	if !errors.As(out.Err(), &matchErr) || !matchErr.Retryable() {
		return false
	}

	// Providers cancelled by the caller's context: never retry.
	if errors.Is(matchErr, context.Canceled) || errors.Is(matchErr, context.DeadlineExceeded) {
		return false
	}
	return true
}
