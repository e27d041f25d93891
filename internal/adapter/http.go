package adapter

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kamalesh-E-S/LearnWiseV2/internal/model"
)

// statusError builds the HTTPError returned for any non-200 provider response.
func statusError(provider string, statusCode int, header http.Header) error {
	return &model.HTTPError{
		StatusCode: statusCode,
		RetryAfter: parseRetryAfter(header.Get("Retry-After"), time.Now()),
		Err:        fmt.Errorf("%s fetch: unexpected status %d", provider, statusCode),
	}
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports both the seconds form ("120") and the HTTP-date form. Returns zero
// if absent, unparseable or already in the past.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	at, err := http.ParseTime(value)
	if err != nil || !at.After(now) {
		return 0
	}
	return at.Sub(now)
}
