package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/errors"
	"github.com/esstools/essready/internal/healthcheck"
	"github.com/esstools/essready/internal/log"
)

// State tracks the runner lifecycle. A runner makes exactly one sweep.
type State int

const (
	// StateIdle means the runner has not started.
	StateIdle State = iota
	// StateRunning means the sweep is in progress.
	StateRunning
	// StateCompleted means the sweep finished. There is no partial-success
	// terminal state; internal failures surface as FAIL records.
	StateCompleted
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Options configures a validation run.
type Options struct {
	// Probe configures the API health-check client.
	Probe healthcheck.Config

	// MinimumVersion is the lowest product version the upgrade supports,
	// as a dotted four-part string.
	MinimumVersion string
}

// DefaultOptions returns the standard sweep options.
func DefaultOptions() Options {
	return Options{
		Probe:          healthcheck.DefaultBatchConfig(),
		MinimumVersion: "5.0.0.0",
	}
}

// Outcome is the completed run handed to the report sink.
type Outcome struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	StartedAt   time.Time `json:"started_at" yaml:"started_at"`
	CompletedAt time.Time `json:"completed_at" yaml:"completed_at"`
	Instances   int       `json:"instances" yaml:"instances"`
	Records     []Record  `json:"records" yaml:"records"`
	Summary     Summary   `json:"summary" yaml:"summary"`
}

// Runner orchestrates the fixed, ordered routine sequence over one shared
// result log. Routines run strictly sequentially; the runner owns the log
// and hands it to each routine in turn.
type Runner struct {
	provider discovery.Provider
	routines []Routine
	logger   *log.Logger
	resLog   *Log
	state    State
}

// NewRunner creates a runner with the standard routine sequence. The API
// health check always runs last.
func NewRunner(provider discovery.Provider, opts Options, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.DefaultLogger()
	}

	prober := healthcheck.NewClient(opts.Probe, logger)
	routines := []Routine{
		NewSystemRoutine(nil),
		NewDetectionRoutine(),
		NewIISRoutine(),
		NewDatabaseRoutine(nil),
		NewNetworkRoutine(opts.Probe, nil),
		NewSecurityRoutine(),
		NewEncryptionRoutine(),
		NewVersionRoutine(opts.MinimumVersion),
		NewSSLRoutine(opts.Probe),
		NewAPIHealthRoutine(prober),
	}

	return &Runner{
		provider: provider,
		routines: routines,
		logger:   logger,
		resLog:   NewLog(),
	}
}

// NewRunnerWithRoutines creates a runner over an explicit routine sequence.
func NewRunnerWithRoutines(provider discovery.Provider, logger *log.Logger, routines ...Routine) *Runner {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Runner{
		provider: provider,
		routines: routines,
		logger:   logger,
		resLog:   NewLog(),
	}
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Run executes the sweep. The record log is cleared on entry, every routine
// runs in order with fail-soft isolation, and the summary is computed over
// the full log on completion.
//
// The only error Run returns before completion is discovery being entirely
// unavailable; every other failure is absorbed into the record log.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	if r.state != StateIdle {
		return nil, errors.NewRunStateError(r.state.String())
	}
	r.state = StateRunning
	r.resLog.Clear()

	runID := uuid.NewString()
	started := time.Now()
	r.logger.Info("validation run started", "run_id", runID)

	instances, err := r.provider.Discover(ctx)
	if err != nil {
		r.state = StateCompleted
		return nil, errors.NewDiscoveryUnavailableError(err)
	}

	for _, routine := range r.routines {
		if ctx.Err() != nil {
			r.resLog.Warn(routine.Category(), "Routine Execution", "skipped: run cancelled")
			continue
		}
		r.runRoutine(ctx, routine, instances)
	}

	r.state = StateCompleted
	summary := r.resLog.Summary()
	if summary.Total != summary.Pass+summary.Fail+summary.Warning+summary.Info {
		return nil, errors.New(errors.ErrCodeRoutineFailed,
			fmt.Sprintf("summary counts inconsistent: %d records", summary.Total))
	}

	r.logger.Info("validation run completed",
		"run_id", runID,
		"total", summary.Total,
		"pass", summary.Pass,
		"fail", summary.Fail,
		"warning", summary.Warning)

	return &Outcome{
		RunID:       runID,
		StartedAt:   started,
		CompletedAt: time.Now(),
		Instances:   len(instances),
		Records:     r.resLog.Records(),
		Summary:     summary,
	}, nil
}

// runRoutine executes one routine with fail-soft isolation: a returned error
// or a panic becomes exactly one FAIL record and the sweep moves on.
func (r *Runner) runRoutine(ctx context.Context, routine Routine, instances []discovery.Instance) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("routine panicked", "routine", routine.Name(), "panic", rec)
			r.resLog.Fail(routine.Category(), "Routine Execution",
				fmt.Sprintf("Validation routine failed unexpectedly: %v", rec))
		}
	}()

	r.logger.Debug("running routine", "routine", routine.Name())
	if err := routine.Run(ctx, instances, r.resLog); err != nil {
		r.logger.WithError(err).Warn("routine failed", "routine", routine.Name())
		r.resLog.Fail(routine.Category(), "Routine Execution",
			fmt.Sprintf("Validation routine failed unexpectedly: %v", err))
	}
}
