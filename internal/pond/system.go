// Package pond models an open raceway pond culture as an ODE system:
// a single biomass state forced by externally supplied climate callables.
package pond

import (
	"fmt"

	"github.com/san-kum/phycosim/internal/kinetics"
	"github.com/san-kum/phycosim/internal/sim"
)

// Environment supplies the climate forcing. The core neither knows nor
// cares how the values are produced (constant, monthly lookup, file
// derived). CO2 receives the current biomass so a depleting-CO2 model can
// slot in later without an interface change.
type Environment struct {
	Irradiance  func(t float64) float64
	CO2         func(t, biomass float64) float64
	Temperature func(t float64) float64
}

// Constant returns an Environment that ignores time and biomass.
func Constant(i0, co2, temp float64) Environment {
	return Environment{
		Irradiance:  func(float64) float64 { return i0 },
		CO2:         func(float64, float64) float64 { return co2 },
		Temperature: func(float64) float64 { return temp },
	}
}

// System is the biomass ODE dX/dt = mu(X, t) * X. It implements
// sim.System, sim.Bounded, and sim.Configurable.
type System struct {
	Growth  kinetics.GrowthParams
	Light   kinetics.LightParams
	Temp    kinetics.TemperatureParams
	Reactor kinetics.ReactorGeometry
	Env     Environment
	NLayers int
}

func New(growth kinetics.GrowthParams, light kinetics.LightParams, temp kinetics.TemperatureParams, reactor kinetics.ReactorGeometry, env Environment) *System {
	return &System{
		Growth:  growth,
		Light:   light,
		Temp:    temp,
		Reactor: reactor,
		Env:     env,
		NLayers: kinetics.DefaultLayers,
	}
}

func (s *System) StateDim() int { return 1 }

// Derive samples the climate callables at t and recomputes the
// depth-averaged growth rate from the biomass it is handed. The light field
// is never cached: integrator substeps see the evolving self-shading, which
// is what keeps the exponential from running unbounded.
func (s *System) Derive(x sim.State, t float64) sim.State {
	biomass := x[0]
	if biomass < 0 {
		biomass = 0
	}

	mu := s.GrowthRateAt(biomass, t)
	return sim.State{mu * biomass}
}

// GrowthRateAt returns the depth-averaged specific growth rate for the
// given biomass at time t.
func (s *System) GrowthRateAt(biomass, t float64) float64 {
	i0 := s.Env.Irradiance(t)
	co2 := s.Env.CO2(t, biomass)
	temp := s.Env.Temperature(t)

	return kinetics.DepthAveragedGrowthRate(i0, co2, temp, biomass, s.Reactor.Depth,
		s.Growth, s.Light, s.Temp, s.NLayers)
}

// Clamp floors biomass at zero. Negative concentrations are numerical
// artifacts, not physical states.
func (s *System) Clamp(x sim.State) sim.State {
	if x[0] < 0 {
		x[0] = 0
	}
	return x
}

func (s *System) GetParams() map[string]float64 {
	return map[string]float64{
		"mu_max":      s.Growth.MuMax,
		"ks_co2":      s.Growth.KsCO2,
		"i_opt":       s.Growth.IOpt,
		"maintenance": s.Growth.Maintenance,
		"discount":    s.Growth.Discount,
		"sigma_x":     s.Light.SigmaX,
		"k_bg":        s.Light.KBg,
		"depth":       s.Reactor.Depth,
		"area":        s.Reactor.SurfaceArea,
	}
}

func (s *System) SetParam(name string, value float64) error {
	switch name {
	case "mu_max":
		s.Growth.MuMax = value
	case "ks_co2":
		s.Growth.KsCO2 = value
	case "i_opt":
		s.Growth.IOpt = value
	case "maintenance":
		s.Growth.Maintenance = value
	case "discount":
		s.Growth.Discount = value
	case "sigma_x":
		s.Light.SigmaX = value
	case "k_bg":
		s.Light.KBg = value
	case "depth":
		s.Reactor.Depth = value
	case "area":
		s.Reactor.SurfaceArea = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
