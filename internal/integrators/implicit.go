package integrators

import (
	"math"

	"github.com/san-kum/phycosim/internal/sim"
)

const (
	maxNewtonIter = 25
	newtonTol     = 1e-10
	jacobianEps   = 1e-7
)

// ImplicitEuler is a backward-Euler integrator with a damped Newton solve
// per step. It is L-stable, which keeps runs usable across the sharp growth
// transitions that blow up explicit methods (seasonal temperature swings,
// irradiance discontinuities at month boundaries). Pair it with
// Config.Adaptive for error control via step doubling.
type ImplicitEuler struct{}

func NewImplicitEuler() *ImplicitEuler {
	return &ImplicitEuler{}
}

func (ie *ImplicitEuler) Step(dyn sim.System, x sim.State, t, dt float64) sim.State {
	n := len(x)

	// predictor: explicit Euler
	f0 := dyn.Derive(x, t)
	y := make(sim.State, n)
	for i := 0; i < n; i++ {
		y[i] = x[i] + dt*f0[i]
	}

	g := make(sim.State, n)
	delta := make(sim.State, n)

	for iter := 0; iter < maxNewtonIter; iter++ {
		fy := dyn.Derive(y, t+dt)
		for i := 0; i < n; i++ {
			g[i] = y[i] - x[i] - dt*fy[i]
		}

		jac := numericalJacobian(dyn, y, t+dt, fy)
		// J_G = I - dt*J_f
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				jac[i][j] = -dt * jac[i][j]
				if i == j {
					jac[i][j] += 1.0
				}
			}
		}

		if !solveLinear(jac, g, delta) {
			// singular iteration matrix, keep the predictor
			return y
		}

		norm := 0.0
		for i := 0; i < n; i++ {
			y[i] -= delta[i]
			norm += delta[i] * delta[i]
		}
		if math.Sqrt(norm) < newtonTol*(1.0+sim.State(y).Norm()) {
			break
		}
	}

	return y
}

// numericalJacobian approximates df/dy by forward differences. State
// dimensions here are tiny (biomass, optionally CO2), so the O(n) extra
// derivative evaluations are cheap.
func numericalJacobian(dyn sim.System, y sim.State, t float64, fy sim.State) [][]float64 {
	n := len(y)
	jac := make([][]float64, n)

	pert := y.Clone()
	for j := 0; j < n; j++ {
		h := jacobianEps * math.Max(1.0, math.Abs(y[j]))
		pert[j] = y[j] + h
		fp := dyn.Derive(pert, t)
		pert[j] = y[j]

		for i := 0; i < n; i++ {
			if jac[i] == nil {
				jac[i] = make([]float64, n)
			}
			jac[i][j] = (fp[i] - fy[i]) / h
		}
	}

	return jac
}

// solveLinear solves A*x = b in place by Gaussian elimination with partial
// pivoting. Returns false when A is numerically singular.
func solveLinear(a [][]float64, b sim.State, x sim.State) bool {
	n := len(b)
	rhs := make([]float64, n)
	copy(rhs, b)

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-14 {
			return false
		}
		a[col], a[pivot] = a[pivot], a[col]
		rhs[col], rhs[pivot] = rhs[pivot], rhs[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			rhs[row] -= factor * rhs[col]
		}
	}

	for row := n - 1; row >= 0; row-- {
		sum := rhs[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}

	return true
}
