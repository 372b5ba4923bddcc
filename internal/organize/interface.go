package organize

import (
	"context"

	"flatcopy/pkg/types"
)

// Runner executes one flattening run.
// This allows the command layer to be tested with a substitute engine.
type Runner interface {
	// Run walks, filters, names and copies, returning the run summary.
	Run(ctx context.Context) (*types.RunSummary, error)
}

// Ensure Engine implements the Runner interface
var _ Runner = (*Engine)(nil)
