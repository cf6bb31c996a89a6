package climate

import (
	"math"

	"github.com/san-kum/phycosim/internal/kinetics"
)

// DailyGrowthRate computes the net daily specific growth rate [1/day] for
// one month's conditions, splitting the day into a photosynthetic daytime
// fraction and a respiring nighttime fraction.
//
// Daytime growth is the depth-averaged rate at the daytime temperature;
// nighttime loss is maintenance respiration scaled by the CTMI response at
// the nighttime temperature. A single daily mean temperature would mask the
// hot-season daytime growth penalty, which is the point of the split.
// Clamped at zero: biomass decay is not modeled at this layer.
func DailyGrowthRate(month MonthlyClimate, co2, biomass, depth float64,
	gp kinetics.GrowthParams, lp kinetics.LightParams, tp kinetics.TemperatureParams, nLayers int) float64 {

	// no daylight, no photosynthesis, no net growth
	if month.Photoperiod <= 0 {
		return 0
	}

	muDay := kinetics.DepthAveragedGrowthRate(month.PAR, co2, month.TempDay,
		biomass, depth, gp, lp, tp, nLayers)

	rNight := gp.Maintenance * kinetics.TemperatureResponse(month.TempNight, tp)

	dayFraction := math.Min(month.Photoperiod, 24.0) / 24.0
	nightFraction := 1.0 - dayFraction

	muNet := muDay*dayFraction - rNight*nightFraction
	if muNet < 0 {
		return 0
	}
	return muNet
}
