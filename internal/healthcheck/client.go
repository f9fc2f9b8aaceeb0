package healthcheck

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/errors"
	"github.com/esstools/essready/internal/log"
	"github.com/esstools/essready/internal/version"
)

const (
	// ProtocolHTTP probes over plain HTTP.
	ProtocolHTTP = "http"
	// ProtocolHTTPS probes over TLS.
	ProtocolHTTPS = "https"

	endpointPath = "api/v1/healthcheck"
	acceptHeader = "application/json, application/xml, text/xml"
)

// Config controls how an instance is probed. The zero Port means the
// protocol's default port, which is omitted from the URI.
type Config struct {
	Protocol          string
	Port              int
	TimeoutSeconds    int
	MaxRetries        int
	RetryDelaySeconds int
}

// DefaultConfig returns probe settings for a single-instance probe.
func DefaultConfig() Config {
	return Config{
		Protocol:          ProtocolHTTP,
		TimeoutSeconds:    60,
		MaxRetries:        2,
		RetryDelaySeconds: 5,
	}
}

// DefaultBatchConfig returns probe settings for probing every discovered
// instance in one sweep. The longer timeout absorbs slow app-pool cold starts.
func DefaultBatchConfig() Config {
	cfg := DefaultConfig()
	cfg.TimeoutSeconds = 90
	return cfg
}

// BuildProbeURL computes the canonical probe URI for an application path.
// The port suffix is omitted when it equals the protocol's default
// (80 for http, 443 for https).
func BuildProbeURL(cfg Config, applicationPath string) string {
	protocol := cfg.Protocol
	if protocol == "" {
		protocol = ProtocolHTTP
	}

	host := "localhost"
	switch {
	case cfg.Port == 0:
	case protocol == ProtocolHTTP && cfg.Port == 80:
	case protocol == ProtocolHTTPS && cfg.Port == 443:
	default:
		host = fmt.Sprintf("localhost:%d", cfg.Port)
	}

	app := strings.Trim(applicationPath, "/")
	if app == "" {
		return fmt.Sprintf("%s://%s/%s", protocol, host, endpointPath)
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, host, app, endpointPath)
}

// Client probes health-check endpoints with bounded retry.
type Client struct {
	cfg    Config
	logger *log.Logger

	// Transport overrides the default pooled transport when non-nil.
	Transport http.RoundTripper
}

// NewClient creates a probe client. A nil logger falls back to the
// process default.
func NewClient(cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Client{cfg: cfg, logger: logger}
}

// Probe issues the health-check GET for one instance and returns the
// normalized result. No error escapes: every failure mode resolves to a
// Result whose Error field carries the message.
func (c *Client) Probe(ctx context.Context, inst discovery.Instance) *Result {
	uri := BuildProbeURL(c.cfg, inst.ApplicationPath)
	result := &Result{Uri: uri, OverallStatus: StatusUnknown}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		result.OverallStatus = StatusError
		result.Error = parseErrorMessage(errors.NewProbeURIError(uri, err))
		return result
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", version.UserAgent())

	retries := 0
	resp, err := c.newRetryClient(&retries).Do(req)
	result.RetryAttempts = retries

	if err != nil {
		probeErr := classifyProbeError(uri, err)
		c.logger.WithError(probeErr).Debug("probe gave up", "uri", uri, "retries", retries)
		result.OverallStatus = StatusError
		result.Error = parseErrorMessage(probeErr)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	c.interpretStatus(result)

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		if result.Error == "" {
			result.Error = readErr.Error()
		}
		result.Success = result.OverallStatus == StatusHealthy
		return result
	}

	c.applyBody(result, string(body), resp.Header.Get("Content-Type"))
	result.Success = result.OverallStatus == StatusHealthy
	result.computeSummary()
	return result
}

// interpretStatus applies the HTTP status mapping. It runs before body
// parsing; an explicit Successful flag in a 200 body may override it.
func (c *Client) interpretStatus(result *Result) {
	switch result.StatusCode {
	case http.StatusOK:
		result.OverallStatus = StatusHealthy
	case http.StatusInternalServerError:
		result.OverallStatus = StatusUnhealthy
		result.Error = "Site is down - HTTP 500 error"
	case http.StatusServiceUnavailable:
		result.OverallStatus = StatusPartiallyUnhealthy
	default:
		result.OverallStatus = StatusUnknown
		result.Error = errors.NewUnexpectedStatusError(result.StatusCode).Message
	}
}

// classifyProbeError maps a transport failure onto the error taxonomy.
// Not-found wording takes precedence over the transient vocabulary.
func classifyProbeError(uri string, err error) *errors.ReadinessError {
	if isNotFoundMessage(err.Error()) {
		return errors.NewNotFoundError(uri, err)
	}
	return errors.NewNetworkError(uri, err)
}

// applyBody parses the response body and folds it into the result.
// Parse failures degrade to a field-level error; status-derived fields are
// kept. The body's overall Successful flag overrides the status mapping only
// on HTTP 200. A 500 stays Unhealthy and a 503 stays PartiallyUnhealthy
// whatever the body claims, though their component lists still apply.
func (c *Client) applyBody(result *Result, body string, contentType string) {
	parsed, err := ParseResponse(body, contentType)
	if err != nil {
		if result.Error == "" {
			result.Error = parseErrorMessage(err)
		}
		return
	}

	result.Components = parsed.Components
	assignRoles(result)

	if parsed.Successful != nil && result.StatusCode == http.StatusOK {
		if *parsed.Successful {
			result.OverallStatus = StatusHealthy
		} else {
			result.OverallStatus = StatusUnhealthy
		}
	}
}

// parseErrorMessage strips the error-code prefix so the result carries the
// plain human-readable message.
func parseErrorMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, "] "); idx >= 0 && strings.HasPrefix(msg, "[") {
		msg = msg[idx+2:]
	}
	if idx := strings.Index(msg, "\n"); idx >= 0 {
		msg = msg[:idx]
	}
	return msg
}

// newRetryClient builds the retrying HTTP client for one probe.
// The retry policy is message-driven: transport failures matching the
// transient vocabulary are retried up to MaxRetries times with a fixed
// delay; not-found failures never retry; HTTP responses never retry at
// the transport level (the status mapping handles them).
func (c *Client) newRetryClient(retries *int) *retryablehttp.Client {
	transport := c.Transport
	if transport == nil {
		pooled := cleanhttp.DefaultPooledTransport()
		if c.cfg.Protocol == ProtocolHTTPS {
			// Localhost-only probe: the site certificate is routinely
			// self-signed or bound to the machine name, so verification
			// is skipped.
			pooled.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		transport = pooled
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   time.Duration(c.cfg.TimeoutSeconds) * time.Second,
	}
	rc.RetryMax = c.cfg.MaxRetries
	rc.Logger = nil

	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if err != nil {
			return isRetryableMessage(err.Error()), nil
		}
		return false, nil
	}

	rc.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		return time.Duration(c.cfg.RetryDelaySeconds) * time.Second
	}

	// Keep the raw last error instead of retryablehttp's "giving up" wrapper.
	rc.ErrorHandler = func(resp *http.Response, err error, numTries int) (*http.Response, error) {
		return resp, err
	}

	rc.RequestLogHook = func(_ retryablehttp.Logger, _ *http.Request, attempt int) {
		if attempt > *retries {
			*retries = attempt
		}
	}

	return rc
}
