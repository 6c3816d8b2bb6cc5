// Package pipeline sequences the ECG analysis stages over one acquisition
// buffer: band-pass filtering, R-peak detection, RR-interval derivation,
// and HRV metric computation.
//
// The pipeline is strictly linear and synchronous. Each stage is a pure
// transform of the previous stage's output, so a [Result] carries every
// intermediate artifact for external reporting and plotting collaborators.
package pipeline

import (
	"github.com/cwbudde/algo-ecg/dsp/filter/bandpass"
	"github.com/cwbudde/algo-ecg/ecg"
	"github.com/cwbudde/algo-ecg/ecg/detect"
	"github.com/cwbudde/algo-ecg/hrv"
)

// Config bundles every tunable of one analysis run. It is immutable for
// the duration of the run; no stage reads ambient state.
type Config struct {
	// Band-pass passband and steepness.
	LowCutHz    float64
	HighCutHz   float64
	FilterOrder int

	// R-peak detection parameters.
	Detector detect.Config

	// Bounds for flagging implausible RR intervals.
	Plausible hrv.PlausibleRange

	// PNNThresholdMs overrides the pNN50 cutoff when > 0.
	PNNThresholdMs float64
}

// DefaultConfig returns the standard analysis configuration: 0.5–40 Hz
// order-3 conditioning, 220 bpm refractory basis, 300–2000 ms plausible
// interval range.
func DefaultConfig() Config {
	return Config{
		LowCutHz:    0.5,
		HighCutHz:   40,
		FilterOrder: 3,
		Detector:    detect.DefaultConfig(),
		Plausible:   hrv.DefaultPlausibleRange(),
	}
}

// Result holds the outputs of all pipeline stages for one buffer.
// Report is only meaningful when Run returned a nil error; the other
// fields hold whatever stages completed before a failure.
type Result struct {
	Raw       ecg.Buffer
	Filtered  []float64
	Peaks     []int
	Intervals []hrv.Interval
	Report    hrv.Report
}

// Run executes the full analysis over buf. Configuration is validated
// before any stage executes; stage errors abort the run and propagate
// unchanged.
func Run(buf ecg.Buffer, cfg Config) (Result, error) {
	res := Result{Raw: buf}

	spec := bandpass.Spec{
		SampleRate: buf.SampleRate,
		LowCutHz:   cfg.LowCutHz,
		HighCutHz:  cfg.HighCutHz,
		Order:      cfg.FilterOrder,
	}
	filter, err := bandpass.New(spec)
	if err != nil {
		return res, err
	}
	if err := cfg.Detector.Validate(); err != nil {
		return res, err
	}

	res.Filtered = filter.ApplyZeroPhase(buf.Samples)

	res.Peaks, err = detect.Peaks(res.Filtered, buf.SampleRate, cfg.Detector)
	if err != nil {
		return res, err
	}

	res.Intervals = hrv.Intervals(res.Peaks, buf.SampleRate, cfg.Plausible)

	res.Report, err = hrv.Compute(res.Intervals, hrv.WithPNNThreshold(cfg.PNNThresholdMs))
	if err != nil {
		return res, err
	}

	return res, nil
}
