// Package healthcheck probes the health-check API of deployed ESS/WFE
// instances and normalizes the response into a single result model.
//
// The probe endpoint lives at {protocol}://localhost[:port]/{app}/api/v1/healthcheck
// and answers in one of two encodings (JSON or XML). Both are folded into
// the same Result; component names are additionally classified onto a fixed
// set of canonical roles (PayGlobal database, Bridge, workflow endpoints, ...).
package healthcheck

// OverallStatus is the aggregate health of one probed instance.
type OverallStatus string

const (
	// StatusHealthy indicates the instance answered HTTP 200 and reported success.
	StatusHealthy OverallStatus = "Healthy"

	// StatusUnhealthy indicates the site is down or reported failure.
	StatusUnhealthy OverallStatus = "Unhealthy"

	// StatusPartiallyUnhealthy indicates HTTP 503: the site is up but one or
	// more components reported failure. Per-component detail comes from the body.
	StatusPartiallyUnhealthy OverallStatus = "PartiallyUnhealthy"

	// StatusUnknown indicates an HTTP status outside the documented set.
	StatusUnknown OverallStatus = "Unknown"

	// StatusError indicates no HTTP response was obtained at all.
	StatusError OverallStatus = "Error"
)

// String returns the string representation of the status.
func (s OverallStatus) String() string {
	return string(s)
}

// ComponentStatus is the health of a single reported component.
type ComponentStatus string

const (
	// ComponentHealthy indicates the component reported success.
	ComponentHealthy ComponentStatus = "Healthy"

	// ComponentUnhealthy indicates the component reported failure.
	ComponentUnhealthy ComponentStatus = "Unhealthy"
)

// ComponentMessage is one diagnostic message attached to a component.
//
// Messages parsed from JSON are normalized: bare strings become Type "Info"
// with FullMessage equal to the string, objects become "{Type}: {Detail}".
// Messages from the XML path are carried through as the document yields them,
// with only FullMessage populated.
type ComponentMessage struct {
	Type        string `json:"type,omitempty"`
	Detail      string `json:"detail,omitempty"`
	FullMessage string `json:"full_message"`
}

// Component is one health-check component reported by the instance.
type Component struct {
	Name     string             `json:"name"`
	Version  string             `json:"version,omitempty"`
	Status   ComponentStatus    `json:"status"`
	Messages []ComponentMessage `json:"messages,omitempty"`
}

// Summary holds derived counts over a result's component list.
type Summary struct {
	TotalComponents      int  `json:"total_components"`
	HealthyComponents    int  `json:"healthy_components"`
	UnhealthyComponents  int  `json:"unhealthy_components"`
	HasVersionInfo       bool `json:"has_version_info"`
	HasComponentMessages bool `json:"has_component_messages"`
}

// Result is the outcome of probing one instance once. It is created after
// the retry loop concludes and not mutated after the parse step fills the
// component slots.
type Result struct {
	Uri           string        `json:"uri"`
	StatusCode    int           `json:"status_code"`
	OverallStatus OverallStatus `json:"overall_status"`
	Success       bool          `json:"success"`
	RetryAttempts int           `json:"retry_attempts"`
	Components    []Component   `json:"components,omitempty"`

	// Canonical role slots. A slot is nil when no component classified onto
	// it; when several do, the slot holds the last one processed.
	PayGlobalDatabase   *Component `json:"payglobal_database,omitempty"`
	SelfServiceSoftware *Component `json:"selfservice_software,omitempty"`
	SelfServiceDatabase *Component `json:"selfservice_database,omitempty"`
	Bridge              *Component `json:"bridge,omitempty"`
	WFEDatabase         *Component `json:"wfe_database,omitempty"`
	BridgeCommunication *Component `json:"bridge_communication,omitempty"`
	WorkflowEndpoints   *Component `json:"workflow_endpoints,omitempty"`

	Error   string  `json:"error,omitempty"`
	Summary Summary `json:"summary"`
}

// computeSummary derives the component counts for the result.
func (r *Result) computeSummary() {
	s := Summary{TotalComponents: len(r.Components)}
	for _, c := range r.Components {
		if c.Status == ComponentHealthy {
			s.HealthyComponents++
		} else {
			s.UnhealthyComponents++
		}
		if c.Version != "" {
			s.HasVersionInfo = true
		}
		if len(c.Messages) > 0 {
			s.HasComponentMessages = true
		}
	}
	r.Summary = s
}
