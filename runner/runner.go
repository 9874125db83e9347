package runner

import (
	"context"

	"slrz.net/vlsm/plan"
)

// The Runner interface describes the capability to materialize a subnet
// plan as real network infrastructure.
type Runner interface {
	// Run realizes the provided plan or returns an error. When the
	// context is canceled, implementations ought to make an effort
	// to clean up and release any previously acquired resources.
	Run(context.Context, *plan.Plan) error
}
