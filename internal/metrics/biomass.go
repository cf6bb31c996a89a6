// Package metrics provides run-level summary metrics for the continuous
// simulation path.
package metrics

import (
	"github.com/san-kum/phycosim/internal/pond"
	"github.com/san-kum/phycosim/internal/sim"
)

// PeakBiomass tracks the maximum biomass concentration seen over a run.
type PeakBiomass struct {
	name string
	peak float64
}

func NewPeakBiomass() *PeakBiomass {
	return &PeakBiomass{name: "peak_biomass"}
}

func (p *PeakBiomass) Name() string { return p.name }

func (p *PeakBiomass) Observe(x sim.State, t float64) {
	if len(x) < 1 {
		return
	}
	if x[0] > p.peak {
		p.peak = x[0]
	}
}

func (p *PeakBiomass) Value() float64 { return p.peak }

func (p *PeakBiomass) Reset() { p.peak = 0 }

// MeanGrowthRate averages the instantaneous specific growth rate over the
// observed trajectory. It re-evaluates the pond's rate law, so it sees the
// same self-shading and climate forcing the integrator saw.
type MeanGrowthRate struct {
	name    string
	sys     *pond.System
	total   float64
	samples int
}

func NewMeanGrowthRate(sys *pond.System) *MeanGrowthRate {
	return &MeanGrowthRate{name: "mean_growth_rate", sys: sys}
}

func (m *MeanGrowthRate) Name() string { return m.name }

func (m *MeanGrowthRate) Observe(x sim.State, t float64) {
	if len(x) < 1 {
		return
	}
	m.total += m.sys.GrowthRateAt(x[0], t)
	m.samples++
}

func (m *MeanGrowthRate) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanGrowthRate) Reset() {
	m.total = 0
	m.samples = 0
}

// CarbonFixed integrates whole-pond CO2 uptake [kg] over the trajectory
// with the trapezoid rule, matching the daily engine's accounting basis.
type CarbonFixed struct {
	name     string
	sys      *pond.System
	co2Ratio float64

	lastT    float64
	lastRate float64
	started  bool
	total    float64
}

// NewCarbonFixed takes the fixation ratio in kg CO2 per kg dry biomass.
func NewCarbonFixed(sys *pond.System, co2Ratio float64) *CarbonFixed {
	return &CarbonFixed{name: "carbon_fixed_kg", sys: sys, co2Ratio: co2Ratio}
}

func (c *CarbonFixed) Name() string { return c.name }

func (c *CarbonFixed) Observe(x sim.State, t float64) {
	if len(x) < 1 {
		return
	}
	mu := c.sys.GrowthRateAt(x[0], t)
	rate := 0.0
	if mu > 0 {
		rate = mu * x[0] * c.sys.Reactor.Volume() * c.co2Ratio / 1000.0
	}

	if c.started {
		dt := t - c.lastT
		if dt > 0 {
			c.total += 0.5 * (c.lastRate + rate) * dt
		}
	}
	c.lastT = t
	c.lastRate = rate
	c.started = true
}

func (c *CarbonFixed) Value() float64 { return c.total }

func (c *CarbonFixed) Reset() {
	c.total = 0
	c.started = false
	c.lastT = 0
	c.lastRate = 0
}
