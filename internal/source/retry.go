package source

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const maxFetchAttempts = 3

// fetchSleepFunc is swappable for fast tests
var fetchSleepFunc = time.Sleep

// FetchWithRetry retries transient fetch failures with exponential
// backoff. Client errors like 404 fail immediately.
func (f *ArchiveFetcher) FetchWithRetry(ctx context.Context, rawURL string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		page, err := f.Fetch(ctx, rawURL)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if !isRetryableFetchError(err) {
			return "", err
		}
		if attempt < maxFetchAttempts {
			fetchSleepFunc(time.Duration(attempt) * 500 * time.Millisecond)
		}
	}

	return "", fmt.Errorf("fetch failed after %d attempts: %w", maxFetchAttempts, lastErr)
}

// isRetryableFetchError classifies errors worth a second attempt: server
// errors, throttling, and connection-level failures.
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()

	for _, code := range []string{"500", "502", "503", "504", "429"} {
		if strings.Contains(msg, "unexpected status: "+code) {
			return true
		}
	}
	if strings.HasPrefix(msg, "fetch: ") {
		return true
	}
	return false
}
