package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a particle state with NaN or Inf values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrCapacity indicates the particle store is full.
	ErrCapacity = errors.New("dynamo: particle capacity exceeded")

	// ErrIndexOutOfRange indicates an operation on a particle that does not exist.
	ErrIndexOutOfRange = errors.New("dynamo: particle index out of range")

	// ErrNonConvergence indicates the implicit solver residual stopped decreasing.
	ErrNonConvergence = errors.New("dynamo: fixed-point iteration did not converge")

	// ErrUnknownStrategy indicates an unrecognized field evaluation strategy.
	ErrUnknownStrategy = errors.New("dynamo: unknown field strategy")

	// ErrUnknownIntegrator indicates an unrecognized integrator name.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")

	// ErrContextCanceled indicates the run was interrupted between steps.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
