package spectrum

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// ErrInvalidInput indicates an input signal or sample rate that cannot be
// analyzed.
var ErrInvalidInput = errors.New("spectrum: invalid input")

// Analysis is a one-sided magnitude spectrum over uniformly spaced bins.
//
// Magnitude[k] is the calibrated amplitude at FreqHz[k]: a pure sinusoid of
// amplitude A produces a peak near A at its frequency. Both slices have
// fftSize/2+1 entries.
type Analysis struct {
	FreqHz    []float64
	Magnitude []float64
}

// Analyze computes the one-sided magnitude spectrum of signal.
//
// The signal is Hann-windowed, zero-padded to the next power of two, and
// transformed with a single FFT. Intended for offline plots; the whole
// recording is transformed at once.
func Analyze(signal []float64, sampleRate float64) (Analysis, error) {
	if len(signal) < 2 {
		return Analysis{}, fmt.Errorf("%w: need at least 2 samples: %d", ErrInvalidInput, len(signal))
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Analysis{}, fmt.Errorf("%w: sample rate must be positive and finite: %v", ErrInvalidInput, sampleRate)
	}
	if !core.AllFinite(signal) {
		return Analysis{}, fmt.Errorf("%w: signal contains non-finite values", ErrInvalidInput)
	}

	n := len(signal)
	fftSize := nextPow2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Analysis{}, fmt.Errorf("spectrum: init fft plan: %w", err)
	}

	in := make([]complex128, fftSize)
	windowSum := 0.0
	for i, x := range signal {
		w := hann(i, n)
		windowSum += w
		in[i] = complex(x*w, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Analysis{}, fmt.Errorf("spectrum: fft: %w", err)
	}

	bins := fftSize/2 + 1
	mag := Magnitude(out[:bins])

	// Amplitude calibration: divide by the coherent window gain, and
	// double interior bins to fold in the negative frequencies.
	last := bins - 1
	for k := range mag {
		mag[k] /= windowSum
		if k > 0 && k < last {
			mag[k] *= 2
		}
	}

	freq := make([]float64, bins)
	binHz := sampleRate / float64(fftSize)
	for k := range freq {
		freq[k] = float64(k) * binHz
	}

	return Analysis{FreqHz: freq, Magnitude: mag}, nil
}

// PeakFrequency returns the frequency of the largest magnitude bin.
// The DC bin is skipped so baseline offset does not mask the dominant
// oscillation.
func (a Analysis) PeakFrequency() float64 {
	if len(a.Magnitude) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(a.Magnitude); k++ {
		if a.Magnitude[k] > a.Magnitude[best] {
			best = k
		}
	}
	return a.FreqHz[best]
}

// Magnitude returns |X[k]| for each complex spectrum bin using the
// vectorized kernel from algo-vecmath.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	return out
}

func hann(i, n int) float64 {
	if n < 2 {
		return 1
	}
	return 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
