package storage

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/phycosim/internal/climate"
	"github.com/san-kum/phycosim/internal/engine"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		TimeDays:         []float64{1, 2, 3},
		Biomass:          []float64{0.51, 0.53, 0.5},
		GrowthRate:       []float64{0.02, 0.039, 0.04},
		Productivity:     []float64{3.0, 6.0, 6.3},
		CO2DailyKg:       []float64{0.55, 1.1, 1.15},
		CO2CumulativeGm2: []float64{5.5, 16.5, 28.05},
		HarvestDays:      []int{2},
		HarvestedKg:      45.0,
		CO2TotalKg:       2.8,
		Warnings:         []string{"July: areal productivity peaked at 36.5 g/m2/day, above the 10 g/m2/day plausibility ceiling"},
		Seasonal: map[climate.Season]engine.SeasonStats{
			climate.SeasonDry: {Days: 3, MeanGrowthRate: 0.033, MeanProductivity: 5.1, CO2Kg: 2.8},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("chlorella_vulgaris", "surat", "daily", 1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Species != "chlorella_vulgaris" || meta.Climate != "surat" {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.HarvestCount != 1 || meta.HarvestedKg != 45.0 {
		t.Errorf("harvest summary mismatch: %+v", meta)
	}
	if meta.DurationDays != 3 {
		t.Errorf("duration = %d, want 3", meta.DurationDays)
	}
	if len(meta.Warnings) != 1 {
		t.Errorf("warnings = %v", meta.Warnings)
	}
}

func TestStoreLoadSeries_RoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	orig := sampleResult()
	runID, err := st.Save("chlorella_vulgaris", "surat", "daily", 1, orig)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if got.Days() != orig.Days() {
		t.Fatalf("days = %d, want %d", got.Days(), orig.Days())
	}
	for i := range orig.Biomass {
		if math.Abs(got.Biomass[i]-orig.Biomass[i]) > 1e-15 {
			t.Errorf("biomass[%d] = %g, want %g", i, got.Biomass[i], orig.Biomass[i])
		}
		if math.Abs(got.CO2CumulativeGm2[i]-orig.CO2CumulativeGm2[i]) > 1e-12 {
			t.Errorf("co2 cumulative[%d] = %g, want %g", i, got.CO2CumulativeGm2[i], orig.CO2CumulativeGm2[i])
		}
	}
	if math.Abs(got.CO2TotalKg-2.8) > 1e-12 {
		t.Errorf("co2 total = %g, want 2.8", got.CO2TotalKg)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store should be empty, got %d runs", len(runs))
	}

	if _, err := st.Save("chlorella_vulgaris", "surat", "daily", 1, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty list, got %d", len(runs))
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	if err := ExportJSON(path, "chlorella_vulgaris", "surat", "daily", 1, sampleResult()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}

	var exported ExportData
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if exported.Species != "chlorella_vulgaris" || exported.DurationDays != 3 {
		t.Errorf("export header mismatch: %+v", exported)
	}
	if len(exported.Biomass) != 3 || exported.CO2TotalKg != 2.8 {
		t.Errorf("export series mismatch")
	}
	if exported.Seasonal[climate.SeasonDry].Days != 3 {
		t.Errorf("seasonal block missing: %+v", exported.Seasonal)
	}
}
