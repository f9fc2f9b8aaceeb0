package discovery

import "context"

// Provider supplies the ordered instance list for one run.
// Implementations must return instances in a stable order; the sweep probes
// them sequentially in the order given.
type Provider interface {
	// Discover returns every deployed instance found on the host.
	// An error means discovery itself is unavailable, which aborts the run;
	// an empty list is a valid result handled by the detection routine.
	Discover(ctx context.Context) ([]Instance, error)
}

// StaticProvider wraps a fixed instance list. It backs single-instance
// probes and tests.
type StaticProvider struct {
	Instances []Instance
}

// Discover returns the fixed list.
func (p *StaticProvider) Discover(ctx context.Context) ([]Instance, error) {
	return p.Instances, nil
}
