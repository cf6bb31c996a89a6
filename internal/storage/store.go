// Package storage persists runs as a directory per run: metadata.json with
// the summary numbers and daily.csv with the time series.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/phycosim/internal/engine"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Species      string    `json:"species"`
	Climate      string    `json:"climate"`
	Mode         string    `json:"mode"`
	Timestamp    time.Time `json:"timestamp"`
	StartMonth   int       `json:"start_month"`
	DurationDays int       `json:"duration_days"`

	HarvestCount     int      `json:"harvest_count"`
	HarvestedKg      float64  `json:"harvested_kg"`
	CO2TotalKg       float64  `json:"co2_total_kg"`
	AvgProductivity  float64  `json:"avg_productivity_g_m2_day"`
	PeakProductivity float64  `json:"peak_productivity_g_m2_day"`
	FinalBiomass     float64  `json:"final_biomass_g_l"`
	Warnings         []string `json:"warnings,omitempty"`
}

var csvHeader = []string{"time_days", "biomass", "growth_rate", "productivity", "co2_daily_kg", "co2_cumulative_gm2"}

func (s *Store) Save(species, climateName, mode string, startMonth int, result *engine.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", species, climateName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	peak, _ := result.PeakProductivity()
	meta := RunMetadata{
		ID:               runID,
		Species:          species,
		Climate:          climateName,
		Mode:             mode,
		Timestamp:        time.Now(),
		StartMonth:       startMonth,
		DurationDays:     result.Days(),
		HarvestCount:     result.HarvestCount(),
		HarvestedKg:      result.HarvestedKg,
		CO2TotalKg:       result.CO2TotalKg,
		AvgProductivity:  result.AvgDailyProductivity(),
		PeakProductivity: peak,
		FinalBiomass:     result.FinalBiomass(),
		Warnings:         result.Warnings,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "daily.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for i := range result.TimeDays {
		row := []string{
			strconv.FormatFloat(result.TimeDays[i], 'f', 1, 64),
			strconv.FormatFloat(result.Biomass[i], 'g', 17, 64),
			strconv.FormatFloat(result.GrowthRate[i], 'g', 17, 64),
			strconv.FormatFloat(result.Productivity[i], 'g', 17, 64),
			strconv.FormatFloat(result.CO2DailyKg[i], 'g', 17, 64),
			strconv.FormatFloat(result.CO2CumulativeGm2[i], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads daily.csv back into a Result. Only the series columns
// round-trip; harvest bookkeeping and seasonal aggregates stay in the
// metadata.
func (s *Store) LoadSeries(runID string) (*engine.Result, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "daily.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return &engine.Result{}, nil
	}

	res := &engine.Result{}
	for _, record := range records[1:] {
		if len(record) != len(csvHeader) {
			continue
		}
		vals := make([]float64, len(record))
		bad := false
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				bad = true
				break
			}
			vals[j] = v
		}
		if bad {
			continue
		}

		res.TimeDays = append(res.TimeDays, vals[0])
		res.Biomass = append(res.Biomass, vals[1])
		res.GrowthRate = append(res.GrowthRate, vals[2])
		res.Productivity = append(res.Productivity, vals[3])
		res.CO2DailyKg = append(res.CO2DailyKg, vals[4])
		res.CO2CumulativeGm2 = append(res.CO2CumulativeGm2, vals[5])
	}
	res.CO2TotalKg = sum(res.CO2DailyKg)

	return res, nil
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
