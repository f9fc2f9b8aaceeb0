package validation

import (
	"context"
	"os"
	"strings"

	"github.com/esstools/essready/internal/discovery"
)

// IISRoutine checks each instance's site configuration: application pool
// assignment, shape of the application path, and presence of the physical
// directory.
type IISRoutine struct{}

// NewIISRoutine creates the IIS configuration routine.
func NewIISRoutine() *IISRoutine {
	return &IISRoutine{}
}

// Name identifies the routine.
func (r *IISRoutine) Name() string { return "iis-configuration" }

// Category is the record category.
func (r *IISRoutine) Category() string { return "IIS Configuration" }

// Run validates the site configuration of every instance.
func (r *IISRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	for _, inst := range instances {
		id := inst.ID()

		if inst.ApplicationPool == "" {
			res.Warn(r.Category(), id, "no application pool assigned")
		} else {
			res.Pass(r.Category(), id, "application pool "+inst.ApplicationPool)
		}

		if strings.ContainsAny(inst.ApplicationPath, " \t") {
			res.Warn(r.Category(), id, "application path contains whitespace")
		}

		if inst.PhysicalPath == "" {
			continue
		}
		if info, err := os.Stat(inst.PhysicalPath); err != nil {
			res.Fail(r.Category(), id, "physical path is not accessible: "+inst.PhysicalPath)
		} else if !info.IsDir() {
			res.Fail(r.Category(), id, "physical path is not a directory: "+inst.PhysicalPath)
		}
	}
	return nil
}
