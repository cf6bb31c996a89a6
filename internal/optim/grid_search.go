// Package optim sweeps scenario parameters looking for the best-performing
// pond design under a fixed climate.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/phycosim/internal/engine"
	"github.com/san-kum/phycosim/internal/experiment"
)

// Objective reduces a run to the number being maximized.
type Objective func(*engine.Result) float64

func TotalCO2Captured(r *engine.Result) float64 { return r.CO2TotalKg }
func TotalHarvested(r *engine.Result) float64   { return r.HarvestedKg }
func MeanProductivity(r *engine.Result) float64 { return r.AvgDailyProductivity() }

// Objectives maps CLI names to reducers.
var Objectives = map[string]Objective{
	"co2":          TotalCO2Captured,
	"harvest":      TotalHarvested,
	"productivity": MeanProductivity,
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch takes parallel slices: params[i] is swept over ranges[i].
// Parameter names follow experiment.ApplyParam.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search evaluates the full cartesian grid against the base scenario and
// returns the best parameter assignment with its objective value.
// Combinations that fail to run are skipped.
func (g *GridSearch) Search(ctx context.Context, base engine.Scenario, objective Objective) (map[string]float64, float64, error) {
	best := math.Inf(-1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), base, objective, &best, &bestParams)

	if bestParams == nil {
		return nil, 0, ErrNoFeasiblePoint
	}
	return bestParams, best, ctx.Err()
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base engine.Scenario,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		sc := base
		for name, val := range current {
			if err := experiment.ApplyParam(&sc, name, val); err != nil {
				return
			}
		}

		result, err := engine.Run(sc)
		if err != nil {
			return
		}

		val := objective(result)
		if val > *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		g.searchRecursive(ctx, depth+1, current, base, objective, best, bestParams)
	}
	delete(current, paramName)
}
