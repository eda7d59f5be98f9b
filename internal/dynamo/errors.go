package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration.
var (
	// ErrInvalidState indicates a state vector containing NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrSingularField indicates the right-hand side evaluated to NaN or Inf.
	ErrSingularField = errors.New("dynamo: vector field is singular at state")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrMaxSteps indicates the step budget ran out before the target time.
	ErrMaxSteps = errors.New("dynamo: maximum number of steps exceeded")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")

	// ErrIntegrationFailure matches every *IntegrationError via errors.Is.
	ErrIntegrationFailure = errors.New("dynamo: integration failed")
)

// IntegrationError wraps a solver failure with the context of the branch
// being integrated.
type IntegrationError struct {
	Branch  string
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *IntegrationError) Error() string {
	if e.Branch == "" {
		return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
	}
	return fmt.Sprintf("%s branch, step %d (t=%.4f): %v", e.Branch, e.Step, e.Time, e.Wrapped)
}

func (e *IntegrationError) Unwrap() error {
	return e.Wrapped
}

func (e *IntegrationError) Is(target error) bool {
	return target == ErrIntegrationFailure
}
