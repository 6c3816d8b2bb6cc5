// Package signal generates deterministic test and simulation waveforms,
// including a synthetic ECG used to exercise the analysis pipeline without
// hardware.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// ECG generates a synthetic single-lead ECG-like waveform at the given
// heart rate, with optional additive white noise and a slow baseline sway.
//
// Each cardiac cycle is modeled as a sum of Gaussian bumps for the P wave,
// QRS complex, and T wave. The waveform is not clinically accurate; it is
// shaped so the R peak dominates and lands at a known phase of each cycle,
// which makes beat positions predictable in tests.
func (g *Generator) ECG(bpm, noiseAmplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("ecg samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("ecg sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if bpm <= 0 {
		return nil, fmt.Errorf("ecg bpm must be > 0: %f", bpm)
	}
	if noiseAmplitude < 0 {
		return nil, fmt.Errorf("ecg noise amplitude must be >= 0: %f", noiseAmplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))

	cycleHz := bpm / 60
	phase := 0.0
	for i := range out {
		t := phase // normalized position in the cycle [0, 1)

		baseline := 0.05 * math.Sin(2*math.Pi*0.33*t)
		p := 0.08 * gauss(t, 0.18, 0.03)
		q := -0.12 * gauss(t, 0.30, 0.01)
		r := 1.00 * gauss(t, ecgRPhase, 0.008)
		s := -0.25 * gauss(t, 0.35, 0.012)
		tw := 0.25 * gauss(t, 0.60, 0.06)

		noise := noiseAmplitude * (rng.Float64()*2 - 1)

		out[i] = baseline + p + q + r + s + tw + noise

		phase += cycleHz / g.cfg.SampleRate
		if phase >= 1 {
			phase -= 1
		}
	}

	return out, nil
}

// ecgRPhase is the normalized cycle position of the R peak produced by
// [Generator.ECG].
const ecgRPhase = 0.32

// ECGRPeakIndices returns the expected R-peak sample positions for a
// waveform produced by [Generator.ECG] with the same parameters.
func (g *Generator) ECGRPeakIndices(bpm float64, samples int) []int {
	if bpm <= 0 || g.cfg.SampleRate <= 0 || samples <= 0 {
		return nil
	}

	period := g.cfg.SampleRate * 60 / bpm
	var peaks []int
	for k := 0; ; k++ {
		idx := int(math.Round((float64(k) + ecgRPhase) * period))
		if idx >= samples {
			break
		}
		peaks = append(peaks, idx)
	}
	return peaks
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(v)
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]float64, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

func gauss(x, mu, sigma float64) float64 {
	z := (x - mu) / sigma
	return math.Exp(-0.5 * z * z)
}
