package classify

import (
	"context"
	"errors"
	"strings"

	"github.com/local/pressclip/internal/ai"
)

// isTransientError reports whether a provider error is worth a retry or a
// failover attempt.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}

	if ai.IsRateLimited(err) {
		return true
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var httpErr *ai.HTTPError
	if errors.As(err, &httpErr) {
		// 5xx server errors are transient; 4xx (except 429, handled
		// above as ErrRateLimited) are not.
		return httpErr.StatusCode >= 500 && httpErr.StatusCode < 600
	}

	// Network-level failures surface as plain errors from net/http.
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "network") ||
		strings.Contains(errStr, "eof") {
		return true
	}

	return false
}

// isFatalError reports whether a provider error means the request itself is
// bad and must not be retried against the same provider.
func isFatalError(err error) bool {
	if err == nil {
		return false
	}

	var httpErr *ai.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode >= 400 && httpErr.StatusCode < 500 && httpErr.StatusCode != 429 {
			return true
		}
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "invalid request") ||
		strings.Contains(errStr, "bad request") ||
		strings.Contains(errStr, "malformed")
}
