package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/phycosim/internal/climate"
	"github.com/san-kum/phycosim/internal/engine"
)

type ExportData struct {
	Species      string `json:"species"`
	Climate      string `json:"climate"`
	Mode         string `json:"mode"`
	StartMonth   int    `json:"start_month"`
	DurationDays int    `json:"duration_days"`

	TimeDays         []float64 `json:"time_days"`
	Biomass          []float64 `json:"biomass_g_l"`
	GrowthRate       []float64 `json:"growth_rate_per_day"`
	Productivity     []float64 `json:"productivity_g_m2_day"`
	CO2DailyKg       []float64 `json:"co2_daily_kg"`
	CO2CumulativeGm2 []float64 `json:"co2_cumulative_g_m2"`

	HarvestDays []int    `json:"harvest_days"`
	HarvestedKg float64  `json:"harvested_kg"`
	CO2TotalKg  float64  `json:"co2_total_kg"`
	Warnings    []string `json:"warnings,omitempty"`

	Seasonal   map[climate.Season]engine.SeasonStats `json:"seasonal"`
	SimMetrics map[string]float64                    `json:"sim_metrics,omitempty"`
}

func newExportData(species, climateName, mode string, startMonth int, result *engine.Result) ExportData {
	return ExportData{
		Species:          species,
		Climate:          climateName,
		Mode:             mode,
		StartMonth:       startMonth,
		DurationDays:     result.Days(),
		TimeDays:         result.TimeDays,
		Biomass:          result.Biomass,
		GrowthRate:       result.GrowthRate,
		Productivity:     result.Productivity,
		CO2DailyKg:       result.CO2DailyKg,
		CO2CumulativeGm2: result.CO2CumulativeGm2,
		HarvestDays:      result.HarvestDays,
		HarvestedKg:      result.HarvestedKg,
		CO2TotalKg:       result.CO2TotalKg,
		Warnings:         result.Warnings,
		Seasonal:         result.Seasonal,
		SimMetrics:       result.SimMetrics,
	}
}

func ExportJSON(path, species, climateName, mode string, startMonth int, result *engine.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeExport(file, species, climateName, mode, startMonth, result)
}

func ExportJSONStdout(species, climateName, mode string, startMonth int, result *engine.Result) error {
	return writeExport(os.Stdout, species, climateName, mode, startMonth, result)
}

func writeExport(w io.Writer, species, climateName, mode string, startMonth int, result *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(species, climateName, mode, startMonth, result))
}
