package climate

import "github.com/san-kum/phycosim/internal/pond"

// Forcing builds the climate callables for the continuous ODE path from a
// monthly profile. Irradiance is the photoperiod-weighted daily-average
// PAR, temperature the photoperiod-weighted day/night mean, and dissolved
// CO2 a constant injection setpoint. Time is in days from the start of
// startMonth; lookups past durationDays hold the final month.
func Forcing(c CityClimate, startMonth, durationDays int, co2 float64) pond.Environment {
	dayToMonth := DayToMonthMap(startMonth, durationDays)

	monthAt := func(t float64) MonthlyClimate {
		day := int(t)
		if day < 0 {
			day = 0
		}
		if day >= len(dayToMonth) {
			day = len(dayToMonth) - 1
		}
		return c.Months[dayToMonth[day]]
	}

	return pond.Environment{
		Irradiance: func(t float64) float64 {
			m := monthAt(t)
			return m.PAR * m.Photoperiod / 24.0
		},
		CO2: func(t, biomass float64) float64 {
			return co2
		},
		Temperature: func(t float64) float64 {
			m := monthAt(t)
			return (m.TempDay*m.Photoperiod + m.TempNight*(24.0-m.Photoperiod)) / 24.0
		},
	}
}
