package kinetics

import (
	"math"
	"testing"
)

var chlorellaTemp = TemperatureParams{TMin: 5.0, TOpt: 30.0, TMax: 42.0}

func TestTemperatureResponse_CardinalPoints(t *testing.T) {
	triples := []TemperatureParams{
		{TMin: 5, TOpt: 30, TMax: 42},
		{TMin: 0, TOpt: 25, TMax: 35},
		{TMin: 15, TOpt: 35, TMax: 45},
	}

	for _, tp := range triples {
		if f := TemperatureResponse(tp.TMin, tp); f != 0 {
			t.Errorf("f(TMin) = %f, want 0", f)
		}
		if f := TemperatureResponse(tp.TMax, tp); f != 0 {
			t.Errorf("f(TMax) = %f, want 0", f)
		}
		if f := TemperatureResponse(tp.TOpt, tp); f != 1 {
			t.Errorf("f(TOpt) = %f, want exactly 1", f)
		}
	}
}

func TestTemperatureResponse_OutsideWindow(t *testing.T) {
	if f := TemperatureResponse(-10, chlorellaTemp); f != 0 {
		t.Errorf("below window: got %f", f)
	}
	if f := TemperatureResponse(60, chlorellaTemp); f != 0 {
		t.Errorf("above window: got %f", f)
	}
}

func TestTemperatureResponse_KnownValues(t *testing.T) {
	tests := []struct {
		temp, want float64
	}{
		{10, 0.1},
		{15, 0.34285714285714286},
		{20, 0.6387096774193548},
		{25, 0.8918032786885246},
		{33, 0.9503030303030303},
		{35, 0.8542372881355932},
		{37, 0.6989761092150171},
		{40, 0.33793103448275863},
	}

	for _, tt := range tests {
		got := TemperatureResponse(tt.temp, chlorellaTemp)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("f(%.0f) = %.15f, want %.15f", tt.temp, got, tt.want)
		}
	}
}

// The CTMI curve declines faster above TOpt than below it. Heat stress is
// harsher than cold stress at the same offset from the optimum.
func TestTemperatureResponse_Asymmetry(t *testing.T) {
	for _, offset := range []float64{2, 5, 8, 10} {
		below := TemperatureResponse(chlorellaTemp.TOpt-offset, chlorellaTemp)
		above := TemperatureResponse(chlorellaTemp.TOpt+offset, chlorellaTemp)
		if above >= below {
			t.Errorf("offset %.0f: f(Topt+d)=%.4f should be below f(Topt-d)=%.4f", offset, above, below)
		}
	}
}

func TestTemperatureResponse_NearOptimumStable(t *testing.T) {
	for _, temp := range []float64{29.9999999, 30.0000001} {
		f := TemperatureResponse(temp, chlorellaTemp)
		if f < 0.999999 || f > 1.0 {
			t.Errorf("f(%.7f) = %.15f, expected ~1 without cancellation artifacts", temp, f)
		}
	}
}

func TestTemperatureResponse_BoundedUnitInterval(t *testing.T) {
	for temp := 0.0; temp <= 50.0; temp += 0.25 {
		f := TemperatureResponse(temp, chlorellaTemp)
		if f < 0 || f > 1 {
			t.Fatalf("f(%.2f) = %f outside [0,1]", temp, f)
		}
	}
}
