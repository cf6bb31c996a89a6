package kinetics

import "math"

// opticalDepthEps guards the analytical depth average against a near-zero
// optical depth, where the expression degenerates to 0/0.
const opticalDepthEps = 1e-10

// IrradianceAtDepth computes Beer-Lambert attenuation at depth z:
//
//	I(z) = I0 * exp(-(sigma_x*X + k_bg) * z)
//
// Zero or negative surface irradiance means no light, not an error.
func IrradianceAtDepth(i0, biomass, z float64, lp LightParams) float64 {
	if i0 <= 0 {
		return 0
	}
	k := lp.SigmaX*biomass + lp.KBg
	return i0 * math.Exp(-k*z)
}

// DepthAveragedIrradiance returns the analytical average irradiance over
// the full column, I0/(K*D) * (1 - exp(-K*D)). This is a diagnostic:
// feeding an averaged irradiance into the nonlinear Steele response
// overestimates growth, so the growth path integrates per layer instead
// (see DepthAveragedGrowthRate).
func DepthAveragedIrradiance(i0, biomass, depth float64, lp LightParams) float64 {
	if i0 <= 0 {
		return 0
	}
	kd := (lp.SigmaX*biomass + lp.KBg) * depth
	if math.Abs(kd) < opticalDepthEps {
		return i0
	}
	return i0 / kd * (1.0 - math.Exp(-kd))
}
