package kinetics

import "fmt"

// ProductivityCeiling is the field-plausibility ceiling for areal
// productivity [g/m2/day]. Values above it are flagged, never capped:
// the evaluator's job is transparency, not correction.
const ProductivityCeiling = 10.0

// ArealProductivity converts a specific growth rate and biomass
// concentration into areal productivity [g/m2/day]:
//
//	P = mu * X * D * 1000
//
// The factor 1000 converts g/L * m into g/m2.
func ArealProductivity(mu, biomass, depth float64) float64 {
	return mu * biomass * depth * 1000.0
}

// CheckProductivityWarnings returns advisory warnings for a productivity
// value. The numeric result is never altered.
func CheckProductivityWarnings(p float64) []string {
	var warnings []string
	if p > ProductivityCeiling {
		warnings = append(warnings,
			fmt.Sprintf("productivity %.2f g/m2/day exceeds the %.0f g/m2/day field-plausibility ceiling - verify parameters", p, ProductivityCeiling))
	}
	return warnings
}
