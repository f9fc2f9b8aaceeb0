package validation

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/healthcheck"
)

// Resolver looks up host addresses; the default uses the system resolver.
type Resolver func(ctx context.Context, host string) ([]string, error)

// NetworkRoutine verifies the local web port answers and that every distinct
// database server name resolves.
type NetworkRoutine struct {
	probe   healthcheck.Config
	resolve Resolver
	dial    Dialer
	timeout time.Duration
}

// NewNetworkRoutine creates the network connectivity routine. A nil resolver
// falls back to net.DefaultResolver.
func NewNetworkRoutine(probe healthcheck.Config, resolve Resolver) *NetworkRoutine {
	if resolve == nil {
		resolve = func(ctx context.Context, host string) ([]string, error) {
			return net.DefaultResolver.LookupHost(ctx, host)
		}
	}
	d := &net.Dialer{}
	return &NetworkRoutine{
		probe:   probe,
		resolve: resolve,
		dial:    d.DialContext,
		timeout: 5 * time.Second,
	}
}

// Name identifies the routine.
func (r *NetworkRoutine) Name() string { return "network-connectivity" }

// Category is the record category.
func (r *NetworkRoutine) Category() string { return "Network Connectivity" }

// Run checks the local web port and database server name resolution.
func (r *NetworkRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	port := r.probe.Port
	if port == 0 {
		if r.probe.Protocol == healthcheck.ProtocolHTTPS {
			port = 443
		} else {
			port = 80
		}
	}

	addr := fmt.Sprintf("localhost:%d", port)
	dialCtx, cancel := context.WithTimeout(ctx, r.timeout)
	conn, err := r.dial(dialCtx, "tcp", addr)
	cancel()
	if err != nil {
		res.Fail(r.Category(), "Web Port", fmt.Sprintf("nothing listening on %s: %v", addr, err))
	} else {
		conn.Close()
		res.Pass(r.Category(), "Web Port", fmt.Sprintf("%s is listening", addr))
	}

	resolved := map[string]bool{}
	for _, inst := range instances {
		host := inst.DatabaseServer
		if idx := strings.Index(host, `\`); idx >= 0 {
			host = host[:idx]
		}
		switch host {
		case "", ".", "(local)", "(LOCAL)", "localhost":
			continue
		}
		if resolved[host] {
			continue
		}
		resolved[host] = true

		lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
		addrs, err := r.resolve(lookupCtx, host)
		cancel()
		if err != nil || len(addrs) == 0 {
			res.Warn(r.Category(), host, "database server name does not resolve from this host")
			continue
		}
		res.Pass(r.Category(), host, fmt.Sprintf("resolves to %s", addrs[0]))
	}

	return nil
}
