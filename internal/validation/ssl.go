package validation

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/healthcheck"
)

const certExpiryWarning = 30 * 24 * time.Hour

// SSLRoutine inspects the local site certificate when probing over https.
// Verification is skipped when dialing (the chain is routinely private) but
// the certificate's validity window is checked explicitly.
type SSLRoutine struct {
	probe   healthcheck.Config
	timeout time.Duration
	now     func() time.Time
}

// NewSSLRoutine creates the SSL certificate routine.
func NewSSLRoutine(probe healthcheck.Config) *SSLRoutine {
	return &SSLRoutine{probe: probe, timeout: 5 * time.Second, now: time.Now}
}

// Name identifies the routine.
func (r *SSLRoutine) Name() string { return "ssl-certificate" }

// Category is the record category.
func (r *SSLRoutine) Category() string { return "SSL Certificate" }

// Run checks the local certificate's validity window.
func (r *SSLRoutine) Run(ctx context.Context, _ []discovery.Instance, res *Log) error {
	if r.probe.Protocol != healthcheck.ProtocolHTTPS {
		res.Info(r.Category(), "Certificate", "probing over http; certificate check skipped")
		return nil
	}

	port := r.probe.Port
	if port == 0 {
		port = 443
	}
	addr := fmt.Sprintf("localhost:%d", port)

	dialer := &net.Dialer{Timeout: r.timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		res.Fail(r.Category(), "Certificate", fmt.Sprintf("TLS handshake with %s failed: %v", addr, err))
		return nil
	}
	defer conn.Close()

	certs := conn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		res.Fail(r.Category(), "Certificate", "server presented no certificate")
		return nil
	}

	leaf := certs[0]
	now := r.now()
	switch {
	case now.After(leaf.NotAfter):
		res.Fail(r.Category(), "Certificate",
			fmt.Sprintf("certificate expired %s", leaf.NotAfter.Format("2006-01-02")))
	case now.Before(leaf.NotBefore):
		res.Fail(r.Category(), "Certificate",
			fmt.Sprintf("certificate not valid until %s", leaf.NotBefore.Format("2006-01-02")))
	case leaf.NotAfter.Sub(now) < certExpiryWarning:
		res.Warn(r.Category(), "Certificate",
			fmt.Sprintf("certificate expires %s; renew before upgrading", leaf.NotAfter.Format("2006-01-02")))
	default:
		res.Pass(r.Category(), "Certificate",
			fmt.Sprintf("certificate valid until %s", leaf.NotAfter.Format("2006-01-02")))
	}
	return nil
}
