package kinetics

import "math"

// ctmiDenomEps guards the CTMI denominator; at T near TOpt floating-point
// cancellation can drive it toward zero while the limit is 1.
const ctmiDenomEps = 1e-12

// TemperatureResponse is the cardinal temperature model with inflection
// (CTMI, Rosso et al. 1993):
//
//	f(T) = (T-Tmax)(T-Tmin)^2 /
//	       [(Topt-Tmin)*((Topt-Tmin)(T-Topt) - (Topt-Tmax)(Topt+Tmin-2T))]
//
// Zero at and beyond the cardinal bounds, exactly 1 at TOpt, clamped to
// [0,1] to absorb floating-point overshoot. The curve is asymmetric: growth
// collapses faster above TOpt than below it, so a symmetric bell is not a
// valid substitute.
func TemperatureResponse(t float64, tp TemperatureParams) float64 {
	if t <= tp.TMin || t >= tp.TMax {
		return 0
	}
	if t == tp.TOpt {
		return 1
	}

	num := (t - tp.TMax) * (t - tp.TMin) * (t - tp.TMin)
	den := (tp.TOpt - tp.TMin) * ((tp.TOpt-tp.TMin)*(t-tp.TOpt) - (tp.TOpt-tp.TMax)*(tp.TOpt+tp.TMin-2*t))
	if math.Abs(den) < ctmiDenomEps {
		return 1
	}

	f := num / den
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
