package kinetics

// GrowthParams holds Monod/Steele growth kinetics for one species.
type GrowthParams struct {
	// MuMax is the maximum specific growth rate [1/day].
	MuMax float64
	// KsCO2 is the half-saturation constant for dissolved CO2 [mg/L].
	KsCO2 float64
	// IOpt is the optimal irradiance for the Steele curve [umol/m2/s].
	IOpt float64
	// Maintenance is the maintenance respiration rate [1/day], subtracted
	// from gross growth.
	Maintenance float64
	// Discount derates lab growth potential to field-realistic rates,
	// bounded in (0, 1].
	Discount float64
}

// LightParams holds Beer-Lambert attenuation coefficients.
type LightParams struct {
	// SigmaX is the biomass-specific absorption coefficient [m2/g].
	SigmaX float64
	// KBg is the background (non-biomass) extinction coefficient [1/m],
	// covering water, dissolved organics, and suspended particles.
	KBg float64
}

// TemperatureParams holds the cardinal temperatures for the CTMI curve.
// Invariant (validated upstream): TMin < TOpt < TMax.
type TemperatureParams struct {
	TMin float64
	TOpt float64
	TMax float64
}

// ReactorGeometry describes the pond or reactor.
type ReactorGeometry struct {
	// Depth [m].
	Depth float64
	// SurfaceArea [m2].
	SurfaceArea float64
}

// Volume returns the culture volume in liters.
func (r ReactorGeometry) Volume() float64 {
	return r.SurfaceArea * r.Depth * 1000.0
}

// DefaultLayers is the depth discretization used when callers do not tune
// it. 20 layers keeps the depth integral within ~0.02% of a 200-layer
// reference for typical optical depths.
const DefaultLayers = 20
