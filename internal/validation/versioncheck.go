package validation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/esstools/essready/internal/discovery"
)

// VersionRoutine compares each instance's installed product version against
// the minimum version the upgrade path supports. Product versions are dotted
// four-part build numbers, not semver.
type VersionRoutine struct {
	minimum string
}

// NewVersionRoutine creates the version compatibility routine.
func NewVersionRoutine(minimum string) *VersionRoutine {
	return &VersionRoutine{minimum: minimum}
}

// Name identifies the routine.
func (r *VersionRoutine) Name() string { return "version-compatibility" }

// Category is the record category.
func (r *VersionRoutine) Category() string { return "Version Compatibility" }

// Run compares every instance version against the minimum.
func (r *VersionRoutine) Run(ctx context.Context, instances []discovery.Instance, res *Log) error {
	min, err := parseVersion(r.minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum version %q: %w", r.minimum, err)
	}

	for _, inst := range instances {
		id := inst.ID()
		if inst.Version == "" {
			res.Warn(r.Category(), id, "installed version is not recorded; cannot verify upgrade path")
			continue
		}

		installed, err := parseVersion(inst.Version)
		if err != nil {
			res.Warn(r.Category(), id, fmt.Sprintf("unparseable version %q", inst.Version))
			continue
		}

		if compareVersions(installed, min) < 0 {
			res.Fail(r.Category(), id,
				fmt.Sprintf("version %s is below the minimum upgradeable version %s", inst.Version, r.minimum))
		} else {
			res.Pass(r.Category(), id, fmt.Sprintf("version %s supports a direct upgrade", inst.Version))
		}
	}
	return nil
}

// parseVersion reads a dotted version of up to four numeric parts; missing
// parts read as zero.
func parseVersion(s string) ([4]int, error) {
	var v [4]int
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) == 0 || len(parts) > 4 {
		return v, fmt.Errorf("expected 1-4 dotted parts, got %d", len(parts))
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return v, fmt.Errorf("part %d: %w", i+1, err)
		}
		v[i] = n
	}
	return v, nil
}

// compareVersions returns -1, 0, or 1 as a is below, equal to, or above b.
func compareVersions(a, b [4]int) int {
	for i := 0; i < 4; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}
