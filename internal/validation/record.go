// Package validation runs the ordered battery of readiness checks and
// collects their results into an append-only record log.
//
// Routines are isolated from each other: a failing routine contributes one
// FAIL record and the sweep continues. The only condition that aborts a run
// is instance discovery being unavailable before any routine has started.
package validation

import "time"

// Status classifies one validation record.
type Status string

const (
	// StatusPass indicates the check succeeded.
	StatusPass Status = "PASS"
	// StatusFail indicates the check found a blocking problem.
	StatusFail Status = "FAIL"
	// StatusWarning indicates a non-blocking problem worth reviewing.
	StatusWarning Status = "WARNING"
	// StatusInfo indicates an informational observation.
	StatusInfo Status = "INFO"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Record is one validation result. Records are append-only; insertion order
// is the display order.
type Record struct {
	Category  string    `json:"category" yaml:"category"`
	Check     string    `json:"check" yaml:"check"`
	Status    Status    `json:"status" yaml:"status"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Summary holds the record counts for a run. It is derived from the full
// record set on every query, never cached.
type Summary struct {
	Total   int `json:"total" yaml:"total"`
	Pass    int `json:"pass" yaml:"pass"`
	Fail    int `json:"fail" yaml:"fail"`
	Warning int `json:"warning" yaml:"warning"`
	Info    int `json:"info" yaml:"info"`
}
