package config

// Presets are ready-made scenarios keyed by name, in the spirit of a lab
// notebook: a short campaign for sanity checks, a full calendar year, and
// a no-harvest batch to watch self-shading saturate the culture.
var Presets = map[string]*Config{
	"year": {
		Species: "chlorella_vulgaris", Climate: "surat", Integrator: "rk4",
		Pond:       PondConfig{Depth: 0.3, SurfaceArea: 100.0},
		Culture:    Culture{InitialBiomass: 0.5, CO2: 5.0, HarvestThreshold: 2.0},
		Simulation: SimConfig{StartMonth: 1, DurationDays: 365, Layers: 20, Dt: 0.25, Tolerance: 1e-6},
	},
	"monsoon": {
		Species: "chlorella_vulgaris", Climate: "surat", Integrator: "rk4",
		Pond:       PondConfig{Depth: 0.3, SurfaceArea: 100.0},
		Culture:    Culture{InitialBiomass: 0.5, CO2: 5.0, HarvestThreshold: 2.0},
		Simulation: SimConfig{StartMonth: 6, DurationDays: 122, Layers: 20, Dt: 0.25, Tolerance: 1e-6},
	},
	"batch": {
		Species: "chlorella_vulgaris", Climate: "surat", Integrator: "rk45",
		Pond:       PondConfig{Depth: 0.3, SurfaceArea: 100.0},
		Culture:    Culture{InitialBiomass: 0.5, CO2: 5.0, HarvestThreshold: 0},
		Simulation: SimConfig{StartMonth: 1, DurationDays: 90, Layers: 20, Dt: 0.25, Tolerance: 1e-6},
	},
	"deep-pond": {
		Species: "chlorella_vulgaris", Climate: "surat", Integrator: "rk4",
		Pond:       PondConfig{Depth: 0.6, SurfaceArea: 100.0},
		Culture:    Culture{InitialBiomass: 0.5, CO2: 5.0, HarvestThreshold: 2.0},
		Simulation: SimConfig{StartMonth: 1, DurationDays: 365, Layers: 20, Dt: 0.25, Tolerance: 1e-6},
	},
}

// Durations maps campaign names to day counts.
var Durations = map[string]int{
	"month":   30,
	"quarter": 90,
	"year":    365,
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
