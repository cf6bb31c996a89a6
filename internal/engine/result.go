package engine

import (
	"github.com/san-kum/phycosim/internal/climate"
)

// SeasonStats aggregates one season's share of a run.
type SeasonStats struct {
	Days             int
	MeanGrowthRate   float64 // 1/day
	MeanProductivity float64 // g/m2/day
	CO2Kg            float64
}

// Result holds the daily time series of a run plus harvest and carbon
// accounting. All slices share one index: entry i describes simulation
// day i, with Biomass recorded after that day's step (and after any
// harvest reset).
type Result struct {
	TimeDays         []float64 // day number, 1-based
	Biomass          []float64 // g/L, end of day
	GrowthRate       []float64 // net specific rate applied that day, 1/day
	Productivity     []float64 // areal, g/m2/day
	CO2DailyKg       []float64 // whole-pond fixation that day
	CO2CumulativeGm2 []float64 // running areal fixation, g/m2

	HarvestDays []int   // day indices where the culture was cut back
	HarvestedKg float64 // dry biomass removed over the run
	CO2TotalKg  float64

	Warnings []string
	Seasonal map[climate.Season]SeasonStats

	// SimMetrics carries the solver-path metrics (peak biomass, mean
	// growth rate, trapezoid carbon integral). Only the ODE mode fills it.
	SimMetrics map[string]float64
}

func (r *Result) Days() int { return len(r.TimeDays) }

func (r *Result) HarvestCount() int { return len(r.HarvestDays) }

func (r *Result) FinalBiomass() float64 {
	if len(r.Biomass) == 0 {
		return 0
	}
	return r.Biomass[len(r.Biomass)-1]
}

// PeakProductivity returns the highest daily areal productivity and the
// day index it occurred on, or (0, -1) for an empty run.
func (r *Result) PeakProductivity() (float64, int) {
	peak, day := 0.0, -1
	for i, p := range r.Productivity {
		if p > peak {
			peak, day = p, i
		}
	}
	return peak, day
}

func (r *Result) AvgDailyProductivity() float64 {
	if len(r.Productivity) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range r.Productivity {
		sum += p
	}
	return sum / float64(len(r.Productivity))
}
