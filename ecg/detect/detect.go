// Package detect locates R peaks in a conditioned ECG signal.
//
// Detection uses an adaptive amplitude threshold so the absolute scale of
// the input does not matter: raw ADC counts and normalized voltages work
// alike. Candidate local maxima above the threshold are then pruned with a
// refractory constraint derived from a maximum plausible heart rate, which
// suppresses double detections on a single QRS complex.
package detect

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/stats"
)

var (
	// ErrEmptySignal indicates a zero-length input signal.
	ErrEmptySignal = errors.New("detect: empty signal")
	// ErrNonFinite indicates the input contains NaN or Inf samples.
	ErrNonFinite = errors.New("detect: signal contains non-finite values")
	// ErrInvalidConfig indicates detector parameters outside their valid range.
	ErrInvalidConfig = errors.New("detect: invalid config")
)

// flatRange is the amplitude range below which a signal is treated as
// flat and yields no peaks.
const flatRange = 1e-12

// Config holds the R-peak detection parameters.
type Config struct {
	// MaxBPM is the maximum plausible heart rate. It sets the refractory
	// distance: no two peaks closer than sampleRate*60/MaxBPM samples.
	MaxBPM float64

	// ThresholdMultiplier scales the spread term of the adaptive
	// threshold: threshold = median + ThresholdMultiplier * stddev.
	// Higher values make detection less sensitive.
	ThresholdMultiplier float64
}

// DefaultConfig returns the detection parameters tuned for general
// single-lead ECG.
func DefaultConfig() Config {
	return Config{
		MaxBPM:              220,
		ThresholdMultiplier: 0.7,
	}
}

// Validate checks the config invariants.
func (c Config) Validate() error {
	if c.MaxBPM <= 0 || !core.IsFinite(c.MaxBPM) {
		return fmt.Errorf("%w: max bpm must be positive and finite: %v", ErrInvalidConfig, c.MaxBPM)
	}
	if c.ThresholdMultiplier < 0 || !core.IsFinite(c.ThresholdMultiplier) {
		return fmt.Errorf("%w: threshold multiplier must be >= 0: %v", ErrInvalidConfig, c.ThresholdMultiplier)
	}
	return nil
}

// RefractorySamples returns the minimum peak spacing in samples for the
// given sample rate and maximum heart rate. Always at least 1.
func RefractorySamples(sampleRate, maxBPM float64) int {
	n := int(math.Round(sampleRate * 60 / maxBPM))
	if n < 1 {
		n = 1
	}
	return n
}

// Peaks returns the strictly increasing sample indices of detected R peaks.
//
// A flat or everywhere-below-threshold signal yields an empty result with
// a nil error; only malformed input (empty, non-finite) or invalid
// parameters produce an error.
func Peaks(signal []float64, sampleRate float64, cfg Config) ([]int, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}
	if !core.AllFinite(signal) {
		return nil, ErrNonFinite
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: sample rate must be positive and finite: %v", ErrInvalidConfig, sampleRate)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	min, max := stats.MinMax(signal)
	if max-min < flatRange {
		return nil, nil
	}

	threshold := stats.Median(signal) + cfg.ThresholdMultiplier*stats.StdDev(signal)
	refractory := RefractorySamples(sampleRate, cfg.MaxBPM)

	var peaks []int
	for i := 1; i < len(signal)-1; i++ {
		x := signal[i]
		if x <= threshold {
			continue
		}
		// Local maximum; on a plateau, take its first sample.
		if x <= signal[i-1] || x < signal[i+1] {
			continue
		}

		if n := len(peaks); n > 0 && i-peaks[n-1] < refractory {
			// Conflict inside the refractory window: keep the larger.
			if x > signal[peaks[n-1]] {
				peaks[n-1] = i
			}
			continue
		}
		peaks = append(peaks, i)
	}

	return peaks, nil
}
