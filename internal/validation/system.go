package validation

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/esstools/essready/internal/discovery"
)

// SystemInfo is the host snapshot the system requirements routine checks.
type SystemInfo struct {
	Hostname string
	OS       string
	Arch     string
	NumCPU   int
}

// SystemInspector supplies the host snapshot. The default implementation
// reads the Go runtime; platform-specific collectors (registry, CIM) plug in
// behind this interface.
type SystemInspector interface {
	Inspect(ctx context.Context) (SystemInfo, error)
}

type runtimeInspector struct{}

func (runtimeInspector) Inspect(ctx context.Context) (SystemInfo, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	return SystemInfo{
		Hostname: hostname,
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		NumCPU:   runtime.NumCPU(),
	}, nil
}

// SystemRoutine records the host characteristics relevant to an upgrade.
type SystemRoutine struct {
	inspector SystemInspector
}

// NewSystemRoutine creates the system requirements routine. A nil inspector
// falls back to the runtime-based default.
func NewSystemRoutine(inspector SystemInspector) *SystemRoutine {
	if inspector == nil {
		inspector = runtimeInspector{}
	}
	return &SystemRoutine{inspector: inspector}
}

// Name identifies the routine.
func (r *SystemRoutine) Name() string { return "system-requirements" }

// Category is the record category.
func (r *SystemRoutine) Category() string { return "System Requirements" }

// Run inspects the host and records its characteristics.
func (r *SystemRoutine) Run(ctx context.Context, _ []discovery.Instance, res *Log) error {
	info, err := r.inspector.Inspect(ctx)
	if err != nil {
		return err
	}

	res.Info(r.Category(), "Host", fmt.Sprintf("%s (%s/%s)", info.Hostname, info.OS, info.Arch))

	if info.NumCPU < 2 {
		res.Warn(r.Category(), "Processors",
			fmt.Sprintf("%d logical processor(s); at least 2 are recommended for the upgrade", info.NumCPU))
	} else {
		res.Pass(r.Category(), "Processors", fmt.Sprintf("%d logical processors", info.NumCPU))
	}

	if info.Arch != "amd64" {
		res.Warn(r.Category(), "Architecture",
			fmt.Sprintf("architecture %s is not a supported upgrade target", info.Arch))
	} else {
		res.Pass(r.Category(), "Architecture", "64-bit architecture")
	}

	return nil
}
