package validation

import (
	"context"

	"github.com/esstools/essready/internal/discovery"
)

// Routine is one independent check in the validation sweep. A routine
// appends zero or more records to the shared log; a returned error (or a
// panic) is converted by the runner into exactly one FAIL record under the
// routine's category.
type Routine interface {
	// Name identifies the routine in logs.
	Name() string

	// Category is the record category this routine reports under.
	Category() string

	// Run executes the routine against the discovered instances.
	Run(ctx context.Context, instances []discovery.Instance, res *Log) error
}
