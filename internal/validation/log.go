package validation

import "time"

// Log is the shared result collector for one validation run. It is created
// per run and passed to every routine; the sequential execution model means
// it has exactly one writer at any instant, so no locking is required.
type Log struct {
	records []Record
}

// NewLog creates an empty result log.
func NewLog() *Log {
	return &Log{}
}

// Append adds one record to the log.
func (l *Log) Append(category, check string, status Status, message string) {
	l.records = append(l.records, Record{
		Category:  category,
		Check:     check,
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Pass appends a PASS record.
func (l *Log) Pass(category, check, message string) {
	l.Append(category, check, StatusPass, message)
}

// Fail appends a FAIL record.
func (l *Log) Fail(category, check, message string) {
	l.Append(category, check, StatusFail, message)
}

// Warn appends a WARNING record.
func (l *Log) Warn(category, check, message string) {
	l.Append(category, check, StatusWarning, message)
}

// Info appends an INFO record.
func (l *Log) Info(category, check, message string) {
	l.Append(category, check, StatusInfo, message)
}

// Records returns the records in insertion order. The returned slice is a
// copy; the log itself is never edited after append.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	return len(l.records)
}

// Clear discards all records. The runner calls this when a run starts.
func (l *Log) Clear() {
	l.records = nil
}

// Summary recomputes the counts over the full record set.
// The invariant Total == Pass+Fail+Warning+Info holds for every query.
func (l *Log) Summary() Summary {
	s := Summary{Total: len(l.records)}
	for _, r := range l.records {
		switch r.Status {
		case StatusPass:
			s.Pass++
		case StatusFail:
			s.Fail++
		case StatusWarning:
			s.Warning++
		case StatusInfo:
			s.Info++
		}
	}
	return s
}
