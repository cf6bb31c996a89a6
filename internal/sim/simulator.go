package sim

import (
	"context"
	"fmt"
	"math"
)

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the system from x0 to cfg.Duration. A solver failure
// (step-size collapse, NaN/Inf state) terminates the run with an explicit
// error alongside the partial result; the series is never silently truncated.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, &SimulationError{Wrapped: ErrDimensionMismatch}
	}

	capacity := int(cfg.Duration/cfg.Dt) + 1
	result := &Result{
		States:  make([]State, 0, capacity),
		Times:   make([]float64, 0, capacity),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := s.clamp(x0.Clone())
	t := 0.0
	dt := cfg.Dt

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	step := 0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if t+dt > cfg.Duration {
			dt = cfg.Duration - t
		}

		for _, m := range s.metrics {
			m.Observe(x, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, t)
		}

		var newX State
		var err error
		taken := dt

		if cfg.Adaptive {
			newX, taken, dt, err = s.adaptiveStep(x, t, dt, cfg)
			if err != nil {
				s.collectMetrics(result)
				return result, &SimulationError{Step: step, Time: t, State: x, Wrapped: err}
			}
		} else {
			newX = s.integrator.Step(s.dyn, x, t, dt)
		}

		if cfg.ValidateState && !newX.IsValid() {
			s.collectMetrics(result)
			return result, &SimulationError{Step: step, Time: t, State: x, Wrapped: ErrInvalidState}
		}

		x = s.clamp(newX)
		t += taken
		step++
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Times = append(result.Times, t)
	}

	s.collectMetrics(result)
	return result, nil
}

func (s *Simulator) collectMetrics(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) clamp(x State) State {
	if b, ok := s.dyn.(Bounded); ok {
		return b.Clamp(x)
	}
	return x
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive && cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

// adaptiveStep returns the accepted state, the step actually taken, and the
// proposed next step. Integrators without a built-in error estimate fall
// back to step doubling.
func (s *Simulator) adaptiveStep(x State, t, dt float64, cfg Config) (State, float64, float64, error) {
	if adaptive, ok := s.integrator.(AdaptiveIntegrator); ok {
		newX, dtNext, err := adaptive.StepAdaptive(s.dyn, x, t, dt, cfg.Tolerance)
		if err != nil {
			return nil, 0, 0, err
		}
		if dtNext < cfg.MinDt {
			return nil, 0, 0, ErrStepTooSmall
		}
		if cfg.MaxDt > 0 {
			dtNext = math.Min(dtNext, cfg.MaxDt)
		}
		return newX, dt, dtNext, nil
	}

	x1 := s.integrator.Step(s.dyn, x, t, dt)
	xHalf := s.integrator.Step(s.dyn, x, t, dt/2)
	x2 := s.integrator.Step(s.dyn, xHalf, t+dt/2, dt/2)

	errEst := x1.Sub(x2).Norm()

	if errEst > cfg.Tolerance {
		if dt/2 < cfg.MinDt {
			return nil, 0, 0, ErrStepTooSmall
		}
		return s.adaptiveStep(x, t, dt/2, cfg)
	}

	dtNext := dt
	if errEst < cfg.Tolerance/10 && dt < cfg.MaxDt {
		dtNext = math.Min(dt*2, cfg.MaxDt)
	}

	return x2, dt, dtNext, nil
}

// RunWithCallback steps the system without accumulating a Result, invoking
// callback before each step. Returning false from the callback stops the run.
func (s *Simulator) RunWithCallback(ctx context.Context, x0 State, cfg Config, callback func(State, float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x := s.clamp(x0.Clone())
	t := 0.0
	dt := cfg.Dt

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, t) {
			return nil
		}

		x = s.clamp(s.integrator.Step(s.dyn, x, t, dt))
		t += dt

		if cfg.ValidateState && !x.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
	}

	return nil
}
