package hrv

import (
	"math"
	"testing"
)

func TestIntervalsKnownSequence(t *testing.T) {
	peaks := []int{0, 250, 500, 750, 1000}
	got := Intervals(peaks, 250, DefaultPlausibleRange())

	if len(got) != 4 {
		t.Fatalf("got %d intervals, want 4", len(got))
	}
	for i, iv := range got {
		if iv.Ms != 1000 {
			t.Errorf("interval %d = %v ms, want 1000", i, iv.Ms)
		}
		if !iv.Valid {
			t.Errorf("interval %d flagged invalid", i)
		}
	}
}

func TestIntervalsCount(t *testing.T) {
	rng := DefaultPlausibleRange()
	tests := []struct {
		name  string
		peaks []int
		want  int
	}{
		{"no peaks", nil, 0},
		{"single peak", []int{100}, 0},
		{"two peaks", []int{100, 300}, 1},
		{"many", []int{0, 200, 400, 600}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intervals(tt.peaks, 250, rng); len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestIntervalsValidityBound(t *testing.T) {
	// At 250 Hz: 50 samples = 200 ms (too fast), 125 = 500 ms (ok),
	// 625 = 2500 ms (too slow).
	peaks := []int{0, 50, 175, 800}
	got := Intervals(peaks, 250, DefaultPlausibleRange())

	wantMs := []float64{200, 500, 2500}
	wantValid := []bool{false, true, false}
	for i := range got {
		if math.Abs(got[i].Ms-wantMs[i]) > 1e-9 {
			t.Errorf("interval %d = %v ms, want %v", i, got[i].Ms, wantMs[i])
		}
		if got[i].Valid != wantValid[i] {
			t.Errorf("interval %d valid = %v, want %v", i, got[i].Valid, wantValid[i])
		}
	}
}

func TestIntervalsRangeBoundariesInclusive(t *testing.T) {
	rng := DefaultPlausibleRange()
	// 75 samples at 250 Hz = 300 ms, 500 samples = 2000 ms.
	got := Intervals([]int{0, 75, 575}, 250, rng)
	if !got[0].Valid || !got[1].Valid {
		t.Errorf("boundary intervals must be valid: %+v", got)
	}
}

func TestIntervalsInvalidRate(t *testing.T) {
	if got := Intervals([]int{0, 250}, 0, DefaultPlausibleRange()); got != nil {
		t.Errorf("zero rate: got %v, want nil", got)
	}
}
