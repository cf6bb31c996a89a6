// Package config holds the scenario file format: which species grows in
// which climate, the pond geometry, and how the run is driven.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultInitialBiomass   = 0.5
	DefaultCO2              = 5.0
	DefaultDepth            = 0.3
	DefaultSurfaceArea      = 100.0
	DefaultStartMonth       = 1
	DefaultDurationDays     = 365
	DefaultHarvestThreshold = 2.0
	DefaultLayers           = 20
)

type Config struct {
	Species     string     `yaml:"species"`
	Climate     string     `yaml:"climate"`
	ClimateFile string     `yaml:"climate_file,omitempty"`
	Integrator  string     `yaml:"integrator"`
	Pond        PondConfig `yaml:"pond"`
	Culture     Culture    `yaml:"culture"`
	Simulation  SimConfig  `yaml:"simulation"`
}

// PondConfig is the raceway geometry. Depth in meters, area in m2.
type PondConfig struct {
	Depth       float64 `yaml:"depth"`
	SurfaceArea float64 `yaml:"surface_area"`
}

type Culture struct {
	InitialBiomass   float64 `yaml:"initial_biomass"`   // g/L
	CO2              float64 `yaml:"co2"`               // dissolved, mg/L
	HarvestThreshold float64 `yaml:"harvest_threshold"` // g/L, 0 disables harvesting
}

type SimConfig struct {
	StartMonth   int     `yaml:"start_month"` // 1-based
	DurationDays int     `yaml:"duration_days"`
	Layers       int     `yaml:"layers"`
	Dt           float64 `yaml:"dt"`        // ODE mode step, days
	Tolerance    float64 `yaml:"tolerance"` // ODE mode adaptive tolerance
}

func DefaultConfig() *Config {
	return &Config{
		Species:    "chlorella_vulgaris",
		Climate:    "surat",
		Integrator: "rk4",
		Pond: PondConfig{
			Depth:       DefaultDepth,
			SurfaceArea: DefaultSurfaceArea,
		},
		Culture: Culture{
			InitialBiomass:   DefaultInitialBiomass,
			CO2:              DefaultCO2,
			HarvestThreshold: DefaultHarvestThreshold,
		},
		Simulation: SimConfig{
			StartMonth:   DefaultStartMonth,
			DurationDays: DefaultDurationDays,
			Layers:       DefaultLayers,
			Dt:           0.25,
			Tolerance:    1e-6,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate collects every problem instead of stopping at the first, so a
// hand-edited scenario file gets one complete report.
func (c *Config) Validate() error {
	var problems []string

	if c.Pond.Depth <= 0 {
		problems = append(problems, "pond depth must be positive")
	}
	if c.Pond.SurfaceArea <= 0 {
		problems = append(problems, "pond surface area must be positive")
	}
	if c.Culture.InitialBiomass <= 0 {
		problems = append(problems, "initial biomass must be positive")
	}
	if c.Culture.CO2 < 0 {
		problems = append(problems, "dissolved CO2 must be non-negative")
	}
	if c.Culture.HarvestThreshold != 0 && c.Culture.HarvestThreshold <= c.Culture.InitialBiomass {
		problems = append(problems, "harvest threshold must exceed initial biomass (or be 0 to disable)")
	}
	if c.Simulation.StartMonth < 1 || c.Simulation.StartMonth > 12 {
		problems = append(problems, "start month must be in 1..12")
	}
	if c.Simulation.DurationDays <= 0 {
		problems = append(problems, "duration must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid scenario: %s", strings.Join(problems, "; "))
	}
	return nil
}
