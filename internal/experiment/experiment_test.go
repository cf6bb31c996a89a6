package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/phycosim/internal/config"
	"github.com/san-kum/phycosim/internal/sim"
)

func TestBuild_Defaults(t *testing.T) {
	sc, err := Build(config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if sc.Growth.IOpt != 80.0 {
		t.Errorf("I_opt = %g, want chlorella preset 80", sc.Growth.IOpt)
	}
	if sc.Climate.Name != "surat" {
		t.Errorf("climate = %q, want surat", sc.Climate.Name)
	}
	if sc.DurationDays != 365 || sc.StartMonth != 1 {
		t.Errorf("calendar = %d days from month %d", sc.DurationDays, sc.StartMonth)
	}

	wantRatio := 44.0 / 12.0 * 0.50
	if sc.CO2Ratio != wantRatio {
		t.Errorf("co2 ratio = %g, want %g", sc.CO2Ratio, wantRatio)
	}
}

func TestBuild_UnknownNames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Species = "kelp"
	if _, err := Build(cfg); err == nil {
		t.Error("unknown species should fail")
	}

	cfg = config.DefaultConfig()
	cfg.Climate = "atlantis"
	if _, err := Build(cfg); err == nil {
		t.Error("unknown climate should fail")
	}
}

func TestBuild_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Pond.Depth = -1
	if _, err := Build(cfg); err == nil {
		t.Error("invalid config should not build")
	}
}

func TestRegistry_Integrators(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"euler", "rk4", "rk45", "implicit"} {
		if _, err := r.GetIntegrator(name); err != nil {
			t.Errorf("GetIntegrator(%s): %v", name, err)
		}
	}
	if _, err := r.GetIntegrator("leapfrog"); err == nil {
		t.Error("unknown integrator should fail")
	}
}

func TestNew_ODEModeAdaptivity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Integrator = "rk45"
	e, err := New(cfg, ModeODE)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !e.SimCfg.Adaptive {
		t.Error("rk45 should enable adaptive stepping")
	}
	if _, ok := e.Integrator.(sim.AdaptiveIntegrator); !ok {
		t.Error("rk45 should implement AdaptiveIntegrator")
	}

	cfg.Integrator = "rk4"
	e, err = New(cfg, ModeODE)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if e.SimCfg.Adaptive {
		t.Error("rk4 should run fixed-step")
	}
}

func TestExperiment_RunBothModes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Simulation.DurationDays = 60
	cfg.Culture.HarvestThreshold = 0

	daily, err := New(cfg, ModeDaily)
	if err != nil {
		t.Fatalf("New daily: %v", err)
	}
	dres, err := daily.Run(context.Background())
	if err != nil {
		t.Fatalf("daily Run: %v", err)
	}

	ode, err := New(cfg, ModeODE)
	if err != nil {
		t.Fatalf("New ode: %v", err)
	}
	ores, err := ode.Run(context.Background())
	if err != nil {
		t.Fatalf("ode Run: %v", err)
	}

	if dres.Days() != 60 || ores.Days() != 60 {
		t.Fatalf("series lengths: daily %d, ode %d", dres.Days(), ores.Days())
	}
	if dres.FinalBiomass() <= 0.5 || ores.FinalBiomass() <= 0.5 {
		t.Errorf("both modes should grow: daily %g, ode %g", dres.FinalBiomass(), ores.FinalBiomass())
	}
}

func TestApplyParam(t *testing.T) {
	sc, err := Build(config.DefaultConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := ApplyParam(&sc, "depth", 0.5); err != nil {
		t.Fatalf("ApplyParam depth: %v", err)
	}
	if sc.Reactor.Depth != 0.5 {
		t.Errorf("depth = %g, want 0.5", sc.Reactor.Depth)
	}

	if err := ApplyParam(&sc, "co2", 12.0); err != nil {
		t.Fatalf("ApplyParam co2: %v", err)
	}
	if sc.CO2 != 12.0 {
		t.Errorf("co2 = %g, want 12", sc.CO2)
	}

	if err := ApplyParam(&sc, "salinity", 35); err == nil {
		t.Error("unknown param should fail")
	}
}
