package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esstools/essready/internal/validation"
)

func sampleOutcome() *validation.Outcome {
	started := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	return &validation.Outcome{
		RunID:       "run-1234",
		StartedAt:   started,
		CompletedAt: started.Add(3 * time.Second),
		Instances:   2,
		Records: []validation.Record{
			{Category: "System Requirements", Check: "Processors", Status: validation.StatusPass, Message: "4 logical processors"},
			{Category: "Instance Detection", Check: "Instances", Status: validation.StatusPass, Message: "1 ESS, 1 WFE"},
			{Category: "API Health Check", Check: "S/ESS", Status: validation.StatusFail, Message: "Site is down - HTTP 500 error"},
		},
		Summary: validation.Summary{Total: 3, Pass: 2, Fail: 1},
	}
}

func TestRenderGroupsByCategory(t *testing.T) {
	out := Render(sampleOutcome(), true)

	// Categories appear once each, in record order.
	sys := strings.Index(out, "System Requirements")
	det := strings.Index(out, "Instance Detection")
	api := strings.Index(out, "API Health Check")
	require.True(t, sys >= 0 && det >= 0 && api >= 0)
	assert.Less(t, sys, det)
	assert.Less(t, det, api)

	assert.Contains(t, out, "Site is down - HTTP 500 error")
	assert.Contains(t, out, "3 check(s)")
	assert.Contains(t, out, "Not ready for upgrade")
}

func TestRenderReadyVerdicts(t *testing.T) {
	outcome := sampleOutcome()

	outcome.Records[2].Status = validation.StatusWarning
	outcome.Summary = validation.Summary{Total: 3, Pass: 2, Warning: 1}
	assert.Contains(t, Render(outcome, true), "Ready with warnings")

	outcome.Records[2].Status = validation.StatusPass
	outcome.Summary = validation.Summary{Total: 3, Pass: 3}
	assert.Contains(t, Render(outcome, true), "Ready for upgrade.")
}

func TestJSONFormatterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &Options{Writer: &buf})
	require.NoError(t, err)
	require.NoError(t, f.Format(sampleOutcome()))

	var decoded validation.Outcome
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "run-1234", decoded.RunID)
	assert.Len(t, decoded.Records, 3)
	assert.Equal(t, 1, decoded.Summary.Fail)
}

func TestYAMLFormatterEmitsRecords(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("yaml", &Options{Writer: &buf})
	require.NoError(t, err)
	require.NoError(t, f.Format(sampleOutcome()))

	assert.Contains(t, buf.String(), "run_id: run-1234")
	assert.Contains(t, buf.String(), "category: API Health Check")
}

func TestNewFormatterUnknownFormat(t *testing.T) {
	_, err := NewFormatter("csv", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
