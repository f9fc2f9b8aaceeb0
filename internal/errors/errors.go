package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Health-check errors (HC-001 to HC-099)
	ErrCodeNetwork          ErrorCode = "HC-001"
	ErrCodeNotFound         ErrorCode = "HC-002"
	ErrCodeParse            ErrorCode = "HC-003"
	ErrCodeUnexpectedStatus ErrorCode = "HC-004"
	ErrCodeProbeURI         ErrorCode = "HC-005"

	// Discovery errors (DISC-001 to DISC-099)
	ErrCodeDiscoveryUnavailable ErrorCode = "DISC-001"
	ErrCodeInventoryInvalid     ErrorCode = "DISC-002"

	// Validation errors (VAL-001 to VAL-099)
	ErrCodeRoutineFailed ErrorCode = "VAL-001"
	ErrCodeRunState      ErrorCode = "VAL-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid ErrorCode = "CONFIG-001"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound   ErrorCode = "IO-001"
	ErrCodeFileReadFailed ErrorCode = "IO-002"
	ErrCodeFileUnmarshal  ErrorCode = "IO-003"
)

// ReadinessError represents an enhanced error with code, cause, and suggestions
type ReadinessError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *ReadinessError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ReadinessError) Unwrap() error {
	return e.Cause
}

// New creates a new ReadinessError
func New(code ErrorCode, message string) *ReadinessError {
	return &ReadinessError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ReadinessError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ReadinessError {
	return &ReadinessError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ReadinessError) WithSuggestion(suggestion string) *ReadinessError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ReadinessError) WithSuggestions(suggestions ...string) *ReadinessError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Common error constructors for frequently used errors

// NewNetworkError creates a network-level probe error
func NewNetworkError(uri string, cause error) *ReadinessError {
	return Wrap(ErrCodeNetwork, fmt.Sprintf("network error probing %s", uri), cause).
		WithSuggestion("Check that the site is running and the port is correct").
		WithSuggestion("Verify no local firewall rule blocks loopback traffic")
}

// NewNotFoundError creates a non-retryable 404 probe error
func NewNotFoundError(uri string, cause error) *ReadinessError {
	return Wrap(ErrCodeNotFound, fmt.Sprintf("health-check endpoint not found: %s", uri), cause).
		WithSuggestion("Confirm the application exposes /api/v1/healthcheck").
		WithSuggestion("Older releases do not ship the health-check API; check the installed version")
}

// NewProbeURIError creates an error for an application path that does not
// form a valid probe URI
func NewProbeURIError(uri string, cause error) *ReadinessError {
	return Wrap(ErrCodeProbeURI, fmt.Sprintf("invalid probe URI: %s", uri), cause).
		WithSuggestion("Check the application path for characters that need escaping")
}

// NewParseError creates a response body parse error
func NewParseError(format string, cause error) *ReadinessError {
	return Wrap(ErrCodeParse, fmt.Sprintf("failed to parse %s health-check response", format), cause).
		WithSuggestion("Inspect the raw response body for truncation or proxy error pages")
}

// NewUnexpectedStatusError creates an error for HTTP statuses outside {200, 500, 503}
func NewUnexpectedStatusError(statusCode int) *ReadinessError {
	return New(ErrCodeUnexpectedStatus, fmt.Sprintf("Unexpected HTTP status code: %d", statusCode)).
		WithSuggestion("Check IIS bindings and authentication settings for the site")
}

// NewDiscoveryUnavailableError creates an error for a discovery provider that
// produced no instance list at all. This is the only condition that aborts a run.
func NewDiscoveryUnavailableError(cause error) *ReadinessError {
	return Wrap(ErrCodeDiscoveryUnavailable, "instance discovery unavailable", cause).
		WithSuggestion("Provide an inventory file with --inventory").
		WithSuggestion("Run the checker on the host where the application is installed")
}

// NewInventoryInvalidError creates an error for a malformed inventory file
func NewInventoryInvalidError(path string, cause error) *ReadinessError {
	return Wrap(ErrCodeInventoryInvalid, fmt.Sprintf("invalid inventory file: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the inventory file")
}

// NewRunStateError creates an error for an orchestrator used out of sequence
func NewRunStateError(state string) *ReadinessError {
	return New(ErrCodeRunState, fmt.Sprintf("validation run already %s", state)).
		WithSuggestion("Create a new runner for each validation sweep")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *ReadinessError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *ReadinessError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
