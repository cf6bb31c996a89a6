package climate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a CityClimate profile from a YAML file.
func Load(path string) (CityClimate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CityClimate{}, err
	}

	var c CityClimate
	if err := yaml.Unmarshal(data, &c); err != nil {
		return CityClimate{}, err
	}
	if err := validate(c); err != nil {
		return CityClimate{}, err
	}
	return c, nil
}

// Save writes a profile to a YAML file.
func Save(path string, c CityClimate) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func validate(c CityClimate) error {
	tp := c.Cardinal
	if !(tp.TMin < tp.TOpt && tp.TOpt < tp.TMax) {
		return fmt.Errorf("climate %q: cardinal temperatures must satisfy t_min < t_opt < t_max, got %.1f/%.1f/%.1f",
			c.Name, tp.TMin, tp.TOpt, tp.TMax)
	}
	for i, m := range c.Months {
		if m.Photoperiod < 0 || m.Photoperiod > 24 {
			return fmt.Errorf("climate %q: month %d photoperiod %.1f outside [0,24]", c.Name, i+1, m.Photoperiod)
		}
		if m.PAR < 0 {
			return fmt.Errorf("climate %q: month %d PAR must be non-negative", c.Name, i+1)
		}
	}
	return nil
}
