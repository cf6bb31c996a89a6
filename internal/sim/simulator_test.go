package sim

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
)

// decay is dx/dt = -k*x, with the exact solution x0*exp(-k*t).
type decay struct {
	k float64
}

func (d decay) Derive(x State, t float64) State { return State{-d.k * x[0]} }
func (d decay) StateDim() int                   { return 1 }

// flooredDecay additionally clamps the state at zero.
type flooredDecay struct {
	decay
}

func (f flooredDecay) Clamp(x State) State {
	if x[0] < 0 {
		x[0] = 0
	}
	return x
}

// eulerStep is a minimal fixed-step integrator for exercising the driver
// without pulling in the real integrators package.
type eulerStep struct{}

func (eulerStep) Step(dyn System, x State, t, dt float64) State {
	dx := dyn.Derive(x, t)
	out := x.Clone()
	for i := range out {
		out[i] += dt * dx[i]
	}
	return out
}

// blowup drives the state to +Inf in one step.
type blowup struct{}

func (blowup) Derive(x State, t float64) State { return State{math.Inf(1)} }
func (blowup) StateDim() int                   { return 1 }

func TestRun_FixedStepMatchesExactSolution(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 1e-4
	cfg.Duration = 1.0

	res, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := res.States[len(res.States)-1][0]
	want := math.Exp(-1.0)
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("final state = %g, want %g", got, want)
	}

	if res.Times[0] != 0 || math.Abs(res.Times[len(res.Times)-1]-1.0) > 1e-12 {
		t.Errorf("time grid endpoints: %g .. %g", res.Times[0], res.Times[len(res.Times)-1])
	}
	if res.StepsTaken == 0 {
		t.Error("StepsTaken not counted")
	}
}

func TestRun_FinalStepClampedToDuration(t *testing.T) {
	s := New(decay{k: 0.1}, eulerStep{})

	// 0.3 does not divide 1.0: the last step must shrink to land exactly.
	cfg := DefaultConfig()
	cfg.Dt = 0.3
	cfg.Duration = 1.0

	res, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if last := res.Times[len(res.Times)-1]; last != 1.0 {
		t.Errorf("final time = %g, want exactly 1.0", last)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})

	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero dt", Config{Dt: 0, Duration: 1}},
		{"negative dt", Config{Dt: -0.1, Duration: 1}},
		{"zero duration", Config{Dt: 0.1, Duration: 0}},
		{"adaptive without tolerance", Config{Dt: 0.1, Duration: 1, Adaptive: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), State{1.0}, tc.cfg); err == nil {
				t.Error("expected config error")
			}
		})
	}
}

func TestRun_DimensionMismatch(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})
	cfg := DefaultConfig()

	_, err := s.Run(context.Background(), State{1.0, 2.0}, cfg)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("err = %v, want ErrDimensionMismatch", err)
	}
}

func TestRun_InvalidStateDetected(t *testing.T) {
	s := New(blowup{}, eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0
	cfg.ValidateState = true

	res, err := s.Run(context.Background(), State{1.0}, cfg)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState", err)
	}

	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		t.Fatal("error should carry step context")
	}
	if res == nil {
		t.Fatal("partial result should be returned alongside the error")
	}
}

func TestRun_BoundedClampApplied(t *testing.T) {
	// Huge step overshoots zero; Clamp must floor every recorded state.
	s := New(flooredDecay{decay{k: 1.0}}, eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 3.0
	cfg.Duration = 9.0

	res, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, x := range res.States {
		if x[0] < 0 {
			t.Errorf("state %d below floor: %g", i, x[0])
		}
	}
}

func TestRun_AdaptiveStepDoublingFallback(t *testing.T) {
	// eulerStep has no error estimate, so the driver must fall back to
	// step doubling and still land within tolerance of the exact solution.
	s := New(decay{k: 1.0}, eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 1.0
	cfg.Adaptive = true
	cfg.Tolerance = 1e-6
	cfg.MinDt = 1e-10
	cfg.MaxDt = 0.5

	res, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	got := res.States[len(res.States)-1][0]
	want := math.Exp(-1.0)
	if math.Abs(got-want) > 1e-3 {
		t.Errorf("adaptive final = %g, want %g", got, want)
	}
}

func TestRun_AdaptiveStepTooSmall(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})

	// Tolerance nobody can meet before dt collapses below MinDt.
	cfg := DefaultConfig()
	cfg.Dt = 0.5
	cfg.Duration = 1.0
	cfg.Adaptive = true
	cfg.Tolerance = 1e-300
	cfg.MinDt = 1e-3

	_, err := s.Run(context.Background(), State{1.0}, cfg)
	if !errors.Is(err, ErrStepTooSmall) {
		t.Errorf("err = %v, want ErrStepTooSmall", err)
	}
}

func TestRun_ContextCancellation(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Duration = 10.0

	if _, err := s.Run(ctx, State{1.0}, cfg); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunWithCallback_StopsEarly(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})

	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 10.0

	calls := 0
	err := s.RunWithCallback(context.Background(), State{1.0}, cfg, func(x State, t float64) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("RunWithCallback: %v", err)
	}
	if calls != 5 {
		t.Errorf("callback called %d times, want 5", calls)
	}
}

// countingMetric records how often it was observed.
type countingMetric struct {
	mu    sync.Mutex
	count int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(x State, t float64) {
	c.mu.Lock()
	c.count++
	c.mu.Unlock()
}
func (c *countingMetric) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.count)
}
func (c *countingMetric) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}

func TestRun_MetricsCollected(t *testing.T) {
	s := New(decay{k: 1.0}, eulerStep{})
	m := &countingMetric{}
	s.AddMetric(m)

	cfg := DefaultConfig()
	cfg.Dt = 0.1
	cfg.Duration = 1.0

	res, err := s.Run(context.Background(), State{1.0}, cfg)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := res.Metrics["count"]; got != float64(res.StepsTaken) {
		t.Errorf("metric observed %g times over %d steps", got, res.StepsTaken)
	}
}

func TestEnsemble_IndependentRuns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.001
	cfg.Duration = 1.0

	runs := []Run{
		{Dyn: decay{k: 1.0}, X0: State{1.0}, Cfg: cfg, Integ: eulerStep{}},
		{Dyn: decay{k: 2.0}, X0: State{1.0}, Cfg: cfg, Integ: eulerStep{}},
		{Dyn: decay{k: 3.0}, X0: State{1.0}, Cfg: cfg, Integ: eulerStep{}},
	}

	results, err := NewEnsemble(runs).Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}

	for i, k := range []float64{1.0, 2.0, 3.0} {
		got := results[i].States[len(results[i].States)-1][0]
		want := math.Exp(-k)
		if math.Abs(got-want) > 5e-3 {
			t.Errorf("run %d final = %g, want %g", i, got, want)
		}
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	n := 1000
	hits := make([]int32, n)

	var mu sync.Mutex
	ParallelFor(n, 100, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			hits[i]++
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestState_Helpers(t *testing.T) {
	s := State{3.0, 4.0}
	if s.Norm() != 5.0 {
		t.Errorf("Norm = %g, want 5", s.Norm())
	}

	c := s.Clone()
	c[0] = 99
	if s[0] != 3.0 {
		t.Error("Clone should not alias the original")
	}

	d := s.Sub(State{1.0, 1.0})
	if d[0] != 2.0 || d[1] != 3.0 {
		t.Errorf("Sub = %v", d)
	}

	if (State{math.NaN()}).IsValid() {
		t.Error("NaN state should be invalid")
	}
	if !(State{1.0}).IsValid() {
		t.Error("finite state should be valid")
	}
}
