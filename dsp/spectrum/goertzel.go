package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// mainsFrequencies are the powerline fundamentals probed by
// [MainsPowerRatio]. Harmonics above the analysis band are handled by the
// conditioning filter, not here.
var mainsFrequencies = [...]float64{50, 60}

// Goertzel evaluates a single DFT bin recursively, without a full FFT.
//
// The analyzer is stateful: Power reflects every sample processed since
// the last Reset. Frequency resolution is set by the block length N; the
// main lobe of the equivalent filter spans 4*pi/N.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates an analyzer for one target frequency.
// frequency must lie in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be positive and finite: %v", ErrInvalidInput, sampleRate)
	}
	if frequency < 0 || frequency > sampleRate/2 || !core.IsFinite(frequency) {
		return nil, fmt.Errorf("%w: frequency must be between 0 and sampleRate/2: %v", ErrInvalidInput, frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0 = 0
	g.s1 = 0
}

// ProcessBlock updates the internal state with a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the target frequency component,
// equivalent to |X[k]|^2 from a DFT over the processed block.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Frequency returns the target frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// MainsPowerRatio reports the fraction of signal power concentrated at the
// 50 and 60 Hz powerline fundamentals, in [0, 1]. A raw electrode trace
// dominated by mains hum scores near 1; a clean or filtered trace scores
// near 0.
//
// Frequencies above the Nyquist limit are skipped, so the measure also
// works at low acquisition rates.
func MainsPowerRatio(signal []float64, sampleRate float64) (float64, error) {
	if len(signal) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 samples: %d", ErrInvalidInput, len(signal))
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, fmt.Errorf("%w: sample rate must be positive and finite: %v", ErrInvalidInput, sampleRate)
	}
	if !core.AllFinite(signal) {
		return 0, fmt.Errorf("%w: signal contains non-finite values", ErrInvalidInput)
	}

	total := 0.0
	for _, x := range signal {
		total += x * x
	}
	if total == 0 {
		return 0, nil
	}

	// A sinusoid of amplitude A contributes A^2*N^2/4 of bin power and
	// A^2*N/2 of sample energy, so 2*P/(N*total) maps a pure tone to 1.
	n := float64(len(signal))
	ratio := 0.0
	for _, f := range mainsFrequencies {
		if f > sampleRate/2 {
			continue
		}
		g, err := NewGoertzel(f, sampleRate)
		if err != nil {
			return 0, err
		}
		g.ProcessBlock(signal)
		ratio += 2 * g.Power() / (n * total)
	}

	return core.Clamp(ratio, 0, 1), nil
}
