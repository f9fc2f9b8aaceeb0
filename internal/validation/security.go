package validation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/esstools/essready/internal/discovery"
)

// SecurityRoutine checks file-level access to each instance's deployment:
// the physical directory must be readable and web.config must be present.
// Account-level ACL inspection stays with the platform collaborator.
type SecurityRoutine struct{}

// NewSecurityRoutine creates the security and permissions routine.
func NewSecurityRoutine() *SecurityRoutine {
	return &SecurityRoutine{}
}

// Name identifies the routine.
func (r *SecurityRoutine) Name() string { return "security-permissions" }

// Category is the record category.
func (r *SecurityRoutine) Category() string { return "Security & Permissions" }

// Run checks read access to each instance's files.
func (r *SecurityRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	for _, inst := range instances {
		id := inst.ID()
		if inst.PhysicalPath == "" {
			res.Warn(r.Category(), id, "no physical path recorded; skipping permission checks")
			continue
		}

		dir, err := os.Open(inst.PhysicalPath)
		if err != nil {
			res.Fail(r.Category(), id, "cannot read deployment directory: "+err.Error())
			continue
		}
		dir.Close()
		res.Pass(r.Category(), id, "deployment directory is readable")

		webConfig := filepath.Join(inst.PhysicalPath, "web.config")
		if f, err := os.Open(webConfig); err != nil {
			res.Fail(r.Category(), id, "web.config is missing or unreadable: "+err.Error())
		} else {
			f.Close()
			res.Pass(r.Category(), id, "web.config is readable")
		}
	}
	return nil
}
