package biquad

import (
	"math"
	"testing"
)

// passthrough has unity gain and no memory.
var passthrough = Coefficients{B0: 1}

func TestSectionPassthrough(t *testing.T) {
	s := NewSection(passthrough)
	for _, x := range []float64{1, -0.5, 0.25, 0} {
		if y := s.ProcessSample(x); y != x {
			t.Fatalf("ProcessSample(%v) = %v, want identity", x, y)
		}
	}
}

func TestSectionProcessBlockMatchesPerSample(t *testing.T) {
	coeffs := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.3}

	in := make([]float64, 64)
	for i := range in {
		in[i] = math.Sin(0.1 * float64(i))
	}

	sampleWise := NewSection(coeffs)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = sampleWise.ProcessSample(x)
	}

	blockWise := NewSection(coeffs)
	got := append([]float64(nil), in...)
	blockWise.ProcessBlock(got)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Fatalf("index %d: block %v != sample %v", i, got[i], want[i])
		}
	}
}

func TestSectionReset(t *testing.T) {
	coeffs := Coefficients{B0: 0.5, B1: 0.5, A1: -0.9}
	s := NewSection(coeffs)

	first := s.ProcessSample(1)
	s.ProcessSample(0.5)
	s.Reset()

	if got := s.ProcessSample(1); got != first {
		t.Errorf("after Reset: got %v, want %v", got, first)
	}
}

func TestSectionStateRoundTrip(t *testing.T) {
	coeffs := Coefficients{B0: 0.3, B1: 0.1, B2: 0.05, A1: -0.7, A2: 0.2}
	s := NewSection(coeffs)
	s.ProcessSample(1)
	s.ProcessSample(-1)

	saved := s.State()
	a := s.ProcessSample(0.5)

	s.SetState(saved)
	b := s.ProcessSample(0.5)

	if a != b {
		t.Errorf("state restore mismatch: %v vs %v", a, b)
	}
}
