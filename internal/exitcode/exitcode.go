package exitcode

import (
	"os"
	"strings"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ChecksFailed indicates the validation sweep completed with FAIL records
	ChecksFailed = 3

	// DiscoveryError indicates that no deployed instances could be discovered
	DiscoveryError = 4

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	errMsg := strings.ToLower(err.Error())

	// Failed validation sweep
	if strings.Contains(errMsg, "validation failed") {
		return ChecksFailed
	}
	if strings.Contains(errMsg, "checks failed") {
		return ChecksFailed
	}

	// Discovery problems
	if strings.Contains(errMsg, "discovery unavailable") {
		return DiscoveryError
	}
	if strings.Contains(errMsg, "no instances") {
		return DiscoveryError
	}

	// Network issues
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "timeout") {
		return NetworkError
	}
	if strings.Contains(errMsg, "network error") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "unknown flag") || strings.Contains(errMsg, "invalid argument") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") {
		return UsageError
	}

	return GeneralError
}
