package validation

import (
	"context"
	"fmt"

	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/healthcheck"
)

// Prober probes one instance's health-check endpoint.
type Prober interface {
	Probe(ctx context.Context, inst discovery.Instance) *healthcheck.Result
}

// APIHealthRoutine probes every instance's health-check API. It runs last in
// the sweep; each instance is probed sequentially and a per-instance failure
// degrades to a FAIL record scoped to that instance rather than aborting the
// batch.
type APIHealthRoutine struct {
	prober Prober
}

// NewAPIHealthRoutine creates the API health-check routine.
func NewAPIHealthRoutine(prober Prober) *APIHealthRoutine {
	return &APIHealthRoutine{prober: prober}
}

// Name identifies the routine.
func (r *APIHealthRoutine) Name() string { return "api-health-check" }

// Category is the record category.
func (r *APIHealthRoutine) Category() string { return "API Health Check" }

// Run probes each instance and folds its result into records.
func (r *APIHealthRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	if len(instances) == 0 {
		res.Info(r.Category(), "Instances", "no instances to probe")
		return nil
	}

	for _, inst := range instances {
		id := inst.ID()
		result := r.prober.Probe(ctx, inst)

		if result.RetryAttempts > 0 {
			res.Info(r.Category(), id,
				fmt.Sprintf("endpoint answered after %d retry attempt(s)", result.RetryAttempts))
		}

		switch result.OverallStatus {
		case healthcheck.StatusHealthy:
			res.Pass(r.Category(), id,
				fmt.Sprintf("healthy (%d component(s) reported)", result.Summary.TotalComponents))

		case healthcheck.StatusPartiallyUnhealthy:
			res.Warn(r.Category(), id,
				fmt.Sprintf("partially unhealthy: %d of %d component(s) failing",
					result.Summary.UnhealthyComponents, result.Summary.TotalComponents))
			r.recordUnhealthyComponents(res, id, result)

		case healthcheck.StatusUnhealthy:
			msg := result.Error
			if msg == "" {
				msg = "instance reported unhealthy"
			}
			res.Fail(r.Category(), id, msg)
			r.recordUnhealthyComponents(res, id, result)

		case healthcheck.StatusUnknown:
			msg := result.Error
			if msg == "" {
				msg = "health state could not be determined"
			}
			res.Warn(r.Category(), id, msg)

		default: // StatusError
			res.Fail(r.Category(), id, fmt.Sprintf("health check failed: %s", result.Error))
		}
	}
	return nil
}

// recordUnhealthyComponents appends one FAIL record per failing component,
// carrying its first message when present.
func (r *APIHealthRoutine) recordUnhealthyComponents(res *Log, id string, result *healthcheck.Result) {
	for _, c := range result.Components {
		if c.Status != healthcheck.ComponentUnhealthy {
			continue
		}
		msg := fmt.Sprintf("component %q is unhealthy", c.Name)
		if len(c.Messages) > 0 {
			msg += ": " + c.Messages[0].FullMessage
		}
		res.Fail(r.Category(), id, msg)
	}
}
