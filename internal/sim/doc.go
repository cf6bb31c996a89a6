// Package sim provides the core primitives for numerical simulation of
// biomass growth as an ordinary differential equation (dX/dt = mu(X, t) * X).
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: vector representing simulation state (biomass concentration,
//     plus room for future coupled states such as dissolved CO2)
//   - [System]: interface for ODE systems
//   - [Integrator] / [AdaptiveIntegrator]: numerical stepping
//   - [Simulator]: orchestrates a single bounded run
//   - [Ensemble]: parallel execution of independent scenario runs
//
// # Example
//
//	dyn := pond.New(params, env)
//	integ := integrators.NewRK45()
//	s := sim.New(dyn, integ)
//	result, _ := s.Run(ctx, sim.State{0.5}, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parameter sweeps or scenario
// comparisons, use [Ensemble], which gives every run its own Simulator and
// shares no mutable state between runs.
package sim
