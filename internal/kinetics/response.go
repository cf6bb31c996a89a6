package kinetics

import "math"

// LightResponse is the Steele photoinhibition curve:
//
//	f(I) = (I/Iopt) * exp(1 - I/Iopt)
//
// It peaks at exactly 1 when I == Iopt and declines on both sides; the
// high-side decline is the photoinhibition penalty a monotonic (Monod-style)
// light response would miss.
func LightResponse(i, iOpt float64) float64 {
	if i <= 0 || iOpt <= 0 {
		return 0
	}
	r := i / iOpt
	return r * math.Exp(1.0-r)
}

// CO2Response is Monod saturation, co2/(Ks+co2). It equals 0.5 at co2 == Ks
// and approaches, but never reaches, 1 for finite co2.
func CO2Response(co2, ks float64) float64 {
	if co2 <= 0 {
		return 0
	}
	return co2 / (ks + co2)
}
