package sim

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with NaN or Inf entries.
	ErrInvalidState = errors.New("sim: invalid state (NaN or Inf detected)")

	// ErrStepTooSmall indicates the adaptive timestep collapsed below the
	// configured minimum. The run is fatal; retrying with a different
	// method or tolerance is the caller's decision.
	ErrStepTooSmall = errors.New("sim: adaptive timestep below minimum")

	// ErrParameterBounds indicates a parameter value outside its valid range.
	ErrParameterBounds = errors.New("sim: parameter out of valid bounds")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and system")
)

// SimulationError wraps an error with the step context it occurred in.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
