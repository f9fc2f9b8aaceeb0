package healthcheck

import "strings"

// Transient failure vocabulary. A request error whose message matches any of
// these is worth retrying; everything else fails the probe immediately.
var retryableFragments = []string{
	"timeout",
	"timed out",
	"deadline exceeded",
	"connection refused",
	"connection reset",
	"connection aborted",
	"no such host",
	"network is unreachable",
	"network error",
	"temporarily",
	"service unavailable",
}

var notFoundFragments = []string{
	"404",
	"not found",
}

// isNotFoundMessage reports whether an error message indicates the endpoint
// does not exist. Not-found failures are never retried, even when the message
// also matches the transient vocabulary.
func isNotFoundMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, fragment := range notFoundFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}

// isRetryableMessage classifies a request failure message as transient.
func isRetryableMessage(msg string) bool {
	if isNotFoundMessage(msg) {
		return false
	}
	lower := strings.ToLower(msg)
	for _, fragment := range retryableFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
