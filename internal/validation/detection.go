package validation

import (
	"context"
	"fmt"

	"github.com/esstools/essready/internal/discovery"
)

// DetectionRoutine validates the discovery output itself: at least one ESS
// instance must exist, WFE instances should be paired with an ESS instance,
// and every instance needs its identifying fields.
type DetectionRoutine struct{}

// NewDetectionRoutine creates the instance detection routine.
func NewDetectionRoutine() *DetectionRoutine {
	return &DetectionRoutine{}
}

// Name identifies the routine.
func (r *DetectionRoutine) Name() string { return "instance-detection" }

// Category is the record category.
func (r *DetectionRoutine) Category() string { return "Instance Detection" }

// Run validates the discovered instance list.
func (r *DetectionRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	if len(instances) == 0 {
		res.Fail(r.Category(), "Instances", "No deployed ESS instances were detected on this host")
		return nil
	}

	essCount, wfeCount := 0, 0
	seen := map[string]bool{}
	for _, inst := range instances {
		switch inst.Kind() {
		case discovery.KindWFE:
			wfeCount++
		default:
			essCount++
		}

		id := inst.ID()
		if seen[id] {
			res.Warn(r.Category(), id, "duplicate instance entry; only the first will be authoritative")
		}
		seen[id] = true

		if inst.DatabaseServer == "" || inst.DatabaseName == "" {
			res.Fail(r.Category(), id, "instance has no database server or database name configured")
		}
		if inst.PhysicalPath == "" {
			res.Warn(r.Category(), id, "instance has no physical path recorded")
		}
	}

	if essCount == 0 {
		res.Fail(r.Category(), "Instances",
			fmt.Sprintf("%d workflow instance(s) found but no ESS application", wfeCount))
		return nil
	}

	res.Pass(r.Category(), "Instances",
		fmt.Sprintf("%d ESS instance(s), %d WFE instance(s) detected", essCount, wfeCount))

	if wfeCount == 0 {
		res.Info(r.Category(), "Workflow Engine", "no WFE instance deployed on this host")
	}

	return nil
}
