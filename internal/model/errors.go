package model

import (
	"fmt"
	"time"
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ErrorKind classifies why a match request produced no jobs.
type ErrorKind string

const (
	// KindInput means the caller supplied no usable skills. Never retried.
	KindInput ErrorKind = "InputError"
	// KindProvider means every provider failed. Safe to retry.
	KindProvider ErrorKind = "ProviderError"
	// KindEmptyResult means providers answered but found nothing, usually
	// because a job board is rate-limiting. Safe to retry after a pause.
	KindEmptyResult ErrorKind = "EmptyResultError"
)

// Sentinels for errors.Is against a *MatchError of the same kind.
var (
	ErrInput       = &MatchError{Kind: KindInput}
	ErrProvider    = &MatchError{Kind: KindProvider}
	ErrEmptyResult = &MatchError{Kind: KindEmptyResult}
)

// MatchError is the structured failure of a match request.
type MatchError struct {
	Kind    ErrorKind
	Message string
	Err     error // underlying cause, set for KindProvider
}

func (e *MatchError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a MatchError of the same kind.
func (e *MatchError) Is(target error) bool {
	t, ok := target.(*MatchError)
	return ok && t.Kind == e.Kind
}

// Retryable reports whether the invoking layer may retry the request.
func (e *MatchError) Retryable() bool {
	return e.Kind == KindProvider || e.Kind == KindEmptyResult
}
