package config

import (
	"sort"

	"github.com/san-kum/phycosim/internal/kinetics"
)

// Species bundles the strain-specific parameters: growth kinetics, optical
// properties, cardinal temperatures, and elemental carbon content. The
// CO2 fixation ratio follows from stoichiometry, not from a tunable.
type Species struct {
	Name          string
	Growth        kinetics.GrowthParams
	Light         kinetics.LightParams
	Temp          kinetics.TemperatureParams
	CarbonContent float64 // g C per g dry biomass
	Citation      string
}

// CO2Ratio is kg CO2 fixed per kg dry biomass: 44/12 converts carbon mass
// to CO2 mass.
func (s Species) CO2Ratio() float64 {
	return 44.0 / 12.0 * s.CarbonContent
}

// SpeciesPresets holds literature-derived parameter sets. The discount
// factor scales lab mu_max down to outdoor raceway conditions.
var SpeciesPresets = map[string]Species{
	"chlorella_vulgaris": {
		Name: "Chlorella vulgaris",
		Growth: kinetics.GrowthParams{
			MuMax:       1.0,
			KsCO2:       0.5,
			IOpt:        80.0,
			Maintenance: 0.01,
			Discount:    0.5,
		},
		Light:         kinetics.LightParams{SigmaX: 0.2, KBg: 0.5},
		Temp:          kinetics.TemperatureParams{TMin: 5.0, TOpt: 30.0, TMax: 42.0},
		CarbonContent: 0.50,
		Citation:      "Bernard & Remond (2012), Bioresour. Technol. 123; Filali et al. (2011)",
	},
	"spirulina_platensis": {
		Name: "Arthrospira (Spirulina) platensis",
		Growth: kinetics.GrowthParams{
			MuMax:       0.8,
			KsCO2:       0.4,
			IOpt:        150.0,
			Maintenance: 0.012,
			Discount:    0.5,
		},
		Light:         kinetics.LightParams{SigmaX: 0.15, KBg: 0.5},
		Temp:          kinetics.TemperatureParams{TMin: 15.0, TOpt: 35.0, TMax: 44.0},
		CarbonContent: 0.46,
		Citation:      "Cornet et al. (1992); Bernard & Remond (2012)",
	},
	"scenedesmus_obliquus": {
		Name: "Scenedesmus obliquus",
		Growth: kinetics.GrowthParams{
			MuMax:       1.2,
			KsCO2:       0.6,
			IOpt:        120.0,
			Maintenance: 0.015,
			Discount:    0.5,
		},
		Light:         kinetics.LightParams{SigmaX: 0.18, KBg: 0.5},
		Temp:          kinetics.TemperatureParams{TMin: 10.0, TOpt: 32.0, TMax: 45.0},
		CarbonContent: 0.48,
		Citation:      "Hodaifa et al. (2010); Bernard & Remond (2012)",
	},
}

// GetSpecies returns a preset by key, or false when unknown.
func GetSpecies(key string) (Species, bool) {
	s, ok := SpeciesPresets[key]
	return s, ok
}

// ListSpecies returns preset keys in sorted order.
func ListSpecies() []string {
	keys := make([]string, 0, len(SpeciesPresets))
	for k := range SpeciesPresets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
