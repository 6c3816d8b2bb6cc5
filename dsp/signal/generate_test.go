package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func newTestGenerator(opts ...Option) *Generator {
	return NewGenerator([]core.ProcessorOption{core.WithSampleRate(250)}, opts...)
}

func TestSine(t *testing.T) {
	g := newTestGenerator()
	out, err := g.Sine(10, 1, 250)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 250 {
		t.Fatalf("length %d, want 250", len(out))
	}
	if out[0] != 0 {
		t.Errorf("sine must start at 0, got %v", out[0])
	}
	// Quarter period of 10 Hz at 250 Hz is 6.25 samples; peak near index 6.
	if out[6] < 0.9 {
		t.Errorf("expected near-peak at index 6, got %v", out[6])
	}
}

func TestSineInvalidArgs(t *testing.T) {
	g := newTestGenerator()
	if _, err := g.Sine(10, 1, 0); err == nil {
		t.Error("expected error for zero samples")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a, err := newTestGenerator(WithSeed(3)).WhiteNoise(0.5, 100)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestGenerator(WithSeed(3)).WhiteNoise(0.5, 100)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, a, b, 0)

	for i, v := range a {
		if math.Abs(v) > 0.5 {
			t.Fatalf("index %d: amplitude %v exceeds bound", i, v)
		}
	}
}

func TestECGShape(t *testing.T) {
	g := newTestGenerator()
	const bpm = 60.0
	out, err := g.ECG(bpm, 0, 2500) // 10 s at 250 Hz
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireFinite(t, out)

	peaks := g.ECGRPeakIndices(bpm, len(out))
	if len(peaks) != 10 {
		t.Fatalf("expected 10 R peaks in 10 s at 60 bpm, got %d", len(peaks))
	}

	// The R bump must dominate the waveform near each predicted position.
	for _, p := range peaks {
		if out[p] < 0.8 {
			t.Errorf("R peak at %d has amplitude %v, want near 1", p, out[p])
		}
	}
}

func TestECGPeakSpacing(t *testing.T) {
	g := newTestGenerator()
	peaks := g.ECGRPeakIndices(75, 5000)
	period := 250.0 * 60 / 75 // 200 samples

	for i := 1; i < len(peaks); i++ {
		d := float64(peaks[i] - peaks[i-1])
		if math.Abs(d-period) > 1 {
			t.Fatalf("peak spacing %v, want ~%v", d, period)
		}
	}
}

func TestECGInvalidArgs(t *testing.T) {
	g := newTestGenerator()
	if _, err := g.ECG(0, 0, 100); err == nil {
		t.Error("expected error for zero bpm")
	}
	if _, err := g.ECG(60, -1, 100); err == nil {
		t.Error("expected error for negative noise")
	}
	if _, err := g.ECG(60, 0, 0); err == nil {
		t.Error("expected error for zero samples")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{1, -4, 2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.25, -1, 0.5}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-15)

	if _, err := Normalize(nil, 1); err == nil {
		t.Error("expected error for empty input")
	}
}
