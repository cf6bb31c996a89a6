package kinetics

// SpecificGrowthRate combines the three limiting responses multiplicatively
// (each factor independently scales the maximum rate; there is no min()
// selection), applies the field discount, subtracts maintenance
// respiration, and clamps at zero. Biomass loss under starvation or heat
// stress shows up as zero growth here, not decay.
func SpecificGrowthRate(i, co2, t float64, gp GrowthParams, tp TemperatureParams) float64 {
	mu := gp.MuMax *
		LightResponse(i, gp.IOpt) *
		CO2Response(co2, gp.KsCO2) *
		TemperatureResponse(t, tp) *
		gp.Discount
	mu -= gp.Maintenance
	if mu < 0 {
		return 0
	}
	return mu
}

// DepthAveragedGrowthRate integrates the specific growth rate over the
// light gradient. The column is split into nLayers equal slices and the
// rate is evaluated at each slice midpoint; CO2 and temperature are held
// uniform over depth, only light attenuates.
//
// Averaging must happen after the nonlinear Steele response: evaluating the
// response at the depth-averaged irradiance gives a materially different
// (wrong) answer. nLayers <= 0 falls back to DefaultLayers.
func DepthAveragedGrowthRate(i0, co2, t, biomass, depth float64, gp GrowthParams, lp LightParams, tp TemperatureParams, nLayers int) float64 {
	if nLayers <= 0 {
		nLayers = DefaultLayers
	}
	if depth <= 0 {
		return SpecificGrowthRate(i0, co2, t, gp, tp)
	}

	dz := depth / float64(nLayers)
	sum := 0.0
	for layer := 0; layer < nLayers; layer++ {
		z := (float64(layer) + 0.5) * dz
		i := IrradianceAtDepth(i0, biomass, z, lp)
		sum += SpecificGrowthRate(i, co2, t, gp, tp)
	}
	return sum / float64(nLayers)
}
