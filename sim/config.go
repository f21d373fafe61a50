package sim

import "github.com/lock-sim/lock-sim/sim/trace"

// Defaults for FillConfig.
const (
	DefaultTimeStep      = 1.0   // s
	DefaultMaxIterations = 20000 // safety cap on the number of steps
)

// FillConfig groups the parameters of one filling run.
type FillConfig struct {
	TimeStep      float64                // fixed integration step (s, must be > 0)
	MaxIterations int                    // iteration cap; reaching it means no convergence
	Trace         *trace.SimulationTrace // optional per-unit discharge trace (may be nil)
}

// NewFillConfig creates a FillConfig with an optional trace.
func NewFillConfig(timeStep float64, maxIterations int, st *trace.SimulationTrace) FillConfig {
	return FillConfig{
		TimeStep:      timeStep,
		MaxIterations: maxIterations,
		Trace:         st,
	}
}

// DefaultFillConfig is a one-second step with the default iteration cap and no trace.
func DefaultFillConfig() FillConfig {
	return NewFillConfig(DefaultTimeStep, DefaultMaxIterations, nil)
}
