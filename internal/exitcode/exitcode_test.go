package exitcode

import (
	"errors"
	"testing"
)

func TestDetermineExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, Success},
		{"generic error", errors.New("something broke"), GeneralError},
		{"validation failed", errors.New("validation failed: 3 checks failed"), ChecksFailed},
		{"discovery unavailable", errors.New("[DISC-001] instance discovery unavailable"), DiscoveryError},
		{"no instances", errors.New("no instances found on this host"), DiscoveryError},
		{"connection refused", errors.New("dial tcp 127.0.0.1:80: connection refused"), NetworkError},
		{"timeout", errors.New("request timeout exceeded"), NetworkError},
		{"unknown flag", errors.New("unknown flag: --frobnicate"), UsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetermineExitCode(tt.err); got != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}
