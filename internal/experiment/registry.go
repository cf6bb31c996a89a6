package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/phycosim/internal/integrators"
	"github.com/san-kum/phycosim/internal/sim"
)

// Registry maps the names used in scenario files to constructors.
type Registry struct {
	integrators map[string]func() sim.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() sim.Integrator),
	}

	r.integrators["euler"] = func() sim.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() sim.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() sim.Integrator { return integrators.NewRK45() }
	r.integrators["implicit"] = func() sim.Integrator { return integrators.NewImplicitEuler() }

	return r
}

func (r *Registry) GetIntegrator(name string) (sim.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
