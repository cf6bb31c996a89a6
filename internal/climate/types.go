// Package climate provides monthly climate profiles and the day/night
// growth integration that ties them to the kinetics layer. Profiles supply
// per-time-step scalar values only; the growth core never reads files or
// clocks itself.
package climate

import "github.com/san-kum/phycosim/internal/kinetics"

// Season labels follow the west-Indian coastal year the default profile
// was built for.
type Season string

const (
	SeasonDry     Season = "dry"
	SeasonHot     Season = "hot"
	SeasonMonsoon Season = "monsoon"
)

// Seasons lists all seasons in reporting order.
var Seasons = []Season{SeasonDry, SeasonHot, SeasonMonsoon}

// MonthlyClimate holds one calendar month of daily-averaged conditions.
type MonthlyClimate struct {
	// TempDay is the average daytime high [C].
	TempDay float64 `yaml:"temp_day"`
	// TempNight is the average nighttime low [C].
	TempNight float64 `yaml:"temp_night"`
	// PAR is the average daytime photosynthetically active radiation
	// [umol/m2/s].
	PAR float64 `yaml:"par"`
	// Photoperiod is hours of daylight, in [0, 24].
	Photoperiod float64 `yaml:"photoperiod"`
	Season      Season  `yaml:"season"`
}

// CardinalTemperatures are the CTMI bounds for the cultured species at
// this site, kept with the profile so a saved file is self-describing.
type CardinalTemperatures struct {
	TMin float64 `yaml:"t_min"`
	TOpt float64 `yaml:"t_opt"`
	TMax float64 `yaml:"t_max"`
}

// CityClimate is a full-year profile for one location, January first.
type CityClimate struct {
	Name     string               `yaml:"name"`
	Months   [12]MonthlyClimate   `yaml:"months"`
	Cardinal CardinalTemperatures `yaml:"cardinal_temperatures"`
}

// TemperatureParams returns the cardinal temperatures as kinetics params.
func (c CityClimate) TemperatureParams() kinetics.TemperatureParams {
	return kinetics.TemperatureParams{TMin: c.Cardinal.TMin, TOpt: c.Cardinal.TOpt, TMax: c.Cardinal.TMax}
}
