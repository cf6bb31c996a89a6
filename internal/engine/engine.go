// Package engine drives pond simulations over a climate calendar: a daily
// budget model with harvest cycling, and a continuous ODE mode on top of
// the sim core for integrator studies.
package engine

import (
	"context"
	"fmt"

	"github.com/san-kum/phycosim/internal/climate"
	"github.com/san-kum/phycosim/internal/kinetics"
	"github.com/san-kum/phycosim/internal/metrics"
	"github.com/san-kum/phycosim/internal/pond"
	"github.com/san-kum/phycosim/internal/sim"
)

// Scenario is a fully resolved run description: species parameters,
// climate profile, geometry, and culture management. Assembly from config
// files and preset names happens upstream.
type Scenario struct {
	Growth   kinetics.GrowthParams
	Light    kinetics.LightParams
	Temp     kinetics.TemperatureParams
	CO2Ratio float64 // kg CO2 fixed per kg dry biomass

	Climate climate.CityClimate
	Reactor kinetics.ReactorGeometry

	InitialBiomass   float64 // g/L
	CO2              float64 // dissolved, mg/L
	HarvestThreshold float64 // g/L, 0 disables
	StartMonth       int     // 1-based
	DurationDays     int
	NLayers          int
}

func (sc Scenario) validate() error {
	if sc.DurationDays <= 0 {
		return fmt.Errorf("scenario: duration %d days, must be positive", sc.DurationDays)
	}
	if sc.Reactor.Depth <= 0 {
		return fmt.Errorf("scenario: pond depth %g m, must be positive", sc.Reactor.Depth)
	}
	if sc.InitialBiomass <= 0 {
		return fmt.Errorf("scenario: initial biomass %g g/L, must be positive", sc.InitialBiomass)
	}
	return nil
}

// Run executes the daily budget model. Each day applies the day/night net
// growth rate for that calendar month at the current biomass, then checks
// the harvest threshold: crossing it removes biomass down to the inoculum
// concentration and restarts the batch.
func Run(sc Scenario) (*Result, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}

	dayToMonth := climate.DayToMonthMap(sc.StartMonth, sc.DurationDays)
	volume := sc.Reactor.Volume()
	acc := newAccumulator(sc)

	x := sc.InitialBiomass
	for day := 0; day < sc.DurationDays; day++ {
		mi := dayToMonth[day]
		mu := climate.DailyGrowthRate(sc.Climate.Months[mi], sc.CO2, x, sc.Reactor.Depth,
			sc.Growth, sc.Light, sc.Temp, sc.NLayers)

		acc.record(day, mi, mu, x)

		next := x + mu*x
		if sc.HarvestThreshold > 0 && next >= sc.HarvestThreshold {
			acc.result.HarvestedKg += (next - sc.InitialBiomass) * volume / 1000.0
			acc.result.HarvestDays = append(acc.result.HarvestDays, day)
			next = sc.InitialBiomass
		}
		x = next
		acc.result.Biomass = append(acc.result.Biomass, x)
	}

	return acc.finish(), nil
}

// RunODE integrates the continuous self-shading ODE with the given
// integrator and resamples the trajectory to the daily series format.
// Harvest cycling is a discrete intervention and is not applied here;
// use Run for managed-culture accounting.
func RunODE(ctx context.Context, sc Scenario, integ sim.Integrator, simCfg sim.Config) (*Result, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}

	env := climate.Forcing(sc.Climate, sc.StartMonth, sc.DurationDays, sc.CO2)
	sys := pond.New(sc.Growth, sc.Light, sc.Temp, sc.Reactor, env)
	if sc.NLayers > 0 {
		sys.NLayers = sc.NLayers
	}

	simulator := sim.New(sys, integ)
	simulator.AddMetric(metrics.NewPeakBiomass())
	simulator.AddMetric(metrics.NewMeanGrowthRate(sys))
	simulator.AddMetric(metrics.NewCarbonFixed(sys, sc.CO2Ratio))

	simCfg.Duration = float64(sc.DurationDays)
	raw, err := simulator.Run(ctx, sim.State{sc.InitialBiomass}, simCfg)
	if err != nil {
		return nil, err
	}

	dayToMonth := climate.DayToMonthMap(sc.StartMonth, sc.DurationDays)
	acc := newAccumulator(sc)

	idx := 0
	for day := 0; day < sc.DurationDays; day++ {
		endOfDay := float64(day + 1)
		for idx < len(raw.Times)-1 && raw.Times[idx] < endOfDay {
			idx++
		}
		x := raw.States[idx][0]
		mu := sys.GrowthRateAt(x, float64(day)+0.5)

		acc.record(day, dayToMonth[day], mu, x)
		acc.result.Biomass = append(acc.result.Biomass, x)
	}

	out := acc.finish()
	out.SimMetrics = raw.Metrics
	return out, nil
}

// accumulator builds the daily series, seasonal aggregates, and the
// per-month productivity warnings shared by both run modes.
type accumulator struct {
	sc     Scenario
	volume float64
	result *Result
	cumGm2 float64

	seasonSums map[climate.Season]*SeasonStats
	peakByMon  map[int]float64
	monOrder   []int
}

func newAccumulator(sc Scenario) *accumulator {
	return &accumulator{
		sc:     sc,
		volume: sc.Reactor.Volume(),
		result: &Result{
			TimeDays:         make([]float64, 0, sc.DurationDays),
			Biomass:          make([]float64, 0, sc.DurationDays),
			GrowthRate:       make([]float64, 0, sc.DurationDays),
			Productivity:     make([]float64, 0, sc.DurationDays),
			CO2DailyKg:       make([]float64, 0, sc.DurationDays),
			CO2CumulativeGm2: make([]float64, 0, sc.DurationDays),
			Seasonal:         make(map[climate.Season]SeasonStats),
		},
		seasonSums: make(map[climate.Season]*SeasonStats),
		peakByMon:  make(map[int]float64),
	}
}

// record books one day's rate, productivity, and carbon uptake. Biomass is
// appended by the caller after stepping, so harvest resets show up in the
// series.
func (a *accumulator) record(day, monthIdx int, mu, biomass float64) {
	p := kinetics.ArealProductivity(mu, biomass, a.sc.Reactor.Depth)

	co2Kg := 0.0
	if mu > 0 {
		co2Kg = mu * biomass * a.volume * a.sc.CO2Ratio / 1000.0
	}
	a.cumGm2 += p * a.sc.CO2Ratio

	r := a.result
	r.TimeDays = append(r.TimeDays, float64(day+1))
	r.GrowthRate = append(r.GrowthRate, mu)
	r.Productivity = append(r.Productivity, p)
	r.CO2DailyKg = append(r.CO2DailyKg, co2Kg)
	r.CO2CumulativeGm2 = append(r.CO2CumulativeGm2, a.cumGm2)
	r.CO2TotalKg += co2Kg

	season := a.sc.Climate.Months[monthIdx].Season
	st, ok := a.seasonSums[season]
	if !ok {
		st = &SeasonStats{}
		a.seasonSums[season] = st
	}
	st.Days++
	st.MeanGrowthRate += mu
	st.MeanProductivity += p
	st.CO2Kg += co2Kg

	if p > kinetics.ProductivityCeiling {
		if _, seen := a.peakByMon[monthIdx]; !seen {
			a.monOrder = append(a.monOrder, monthIdx)
		}
		if p > a.peakByMon[monthIdx] {
			a.peakByMon[monthIdx] = p
		}
	}
}

func (a *accumulator) finish() *Result {
	for season, st := range a.seasonSums {
		out := *st
		if out.Days > 0 {
			out.MeanGrowthRate /= float64(out.Days)
			out.MeanProductivity /= float64(out.Days)
		}
		a.result.Seasonal[season] = out
	}

	for _, mi := range a.monOrder {
		a.result.Warnings = append(a.result.Warnings, fmt.Sprintf(
			"%s: areal productivity peaked at %.1f g/m2/day, above the %.0f g/m2/day plausibility ceiling",
			climate.MonthNames[mi], a.peakByMon[mi], kinetics.ProductivityCeiling))
	}

	return a.result
}
