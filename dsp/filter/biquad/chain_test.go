package biquad

import (
	"math"
	"testing"
)

func TestChainCascadeOrder(t *testing.T) {
	// Two distinct one-pole lowpass sections; cascading must apply both.
	coeffs := []Coefficients{
		{B0: 0.5, B1: 0.5},
		{B0: 0.25, B1: 0.75},
	}
	c := NewChain(coeffs)

	if c.NumSections() != 2 {
		t.Fatalf("NumSections = %d, want 2", c.NumSections())
	}

	// Manually cascade with independent sections.
	s0 := NewSection(coeffs[0])
	s1 := NewSection(coeffs[1])

	for _, x := range []float64{1, 0, -0.5, 0.3} {
		want := s1.ProcessSample(s0.ProcessSample(x))
		if got := c.ProcessSample(x); math.Abs(got-want) > 1e-15 {
			t.Fatalf("ProcessSample(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestChainProcessBlockMatchesPerSample(t *testing.T) {
	coeffs := []Coefficients{
		{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.3, A2: 0.1},
		{B0: 0.7, B1: -0.2, B2: 0.1, A1: 0.2, A2: -0.05},
	}

	in := make([]float64, 128)
	for i := range in {
		in[i] = math.Cos(0.05 * float64(i))
	}

	ref := NewChain(coeffs)
	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = ref.ProcessSample(x)
	}

	c := NewChain(coeffs)
	got := append([]float64(nil), in...)
	c.ProcessBlock(got)

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("index %d: block %v != sample %v", i, got[i], want[i])
		}
	}
}

func TestChainReset(t *testing.T) {
	coeffs := []Coefficients{{B0: 0.5, B1: 0.5, A1: -0.8}}
	c := NewChain(coeffs)

	first := c.ProcessSample(1)
	c.ProcessSample(1)
	c.Reset()

	if got := c.ProcessSample(1); got != first {
		t.Errorf("after Reset: got %v, want %v", got, first)
	}
}

func TestChainResponseUnityPassthrough(t *testing.T) {
	c := NewChain([]Coefficients{{B0: 1}})
	for _, f := range []float64{1, 10, 40} {
		if mag := c.MagnitudeDB(f, 250); math.Abs(mag) > 1e-12 {
			t.Errorf("passthrough at %v Hz: %v dB, want 0", f, mag)
		}
	}
}
