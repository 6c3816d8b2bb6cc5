package hrv

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-ecg/stats"
)

// ErrInsufficientData indicates there are no valid RR intervals to
// compute metrics from.
var ErrInsufficientData = errors.New("hrv: insufficient data")

// defaultPNNThresholdMs is the conventional pNN50 cutoff.
const defaultPNNThresholdMs = 50.0

// Report holds the time-domain HRV summary of one analysis run.
// It is derived purely from the valid subset of the interval series.
type Report struct {
	MeanRRMs         float64
	SDNNMs           float64
	RMSSDMs          float64
	PNN50Pct         float64
	MeanHeartRateBPM float64
	BeatCount        int
	ExcludedCount    int
}

type computeConfig struct {
	pnnThresholdMs float64
}

// Option configures [Compute].
type Option func(*computeConfig)

// WithPNNThreshold overrides the successive-difference threshold (ms)
// used for the pNN50 metric. The default is 50 ms.
func WithPNNThreshold(ms float64) Option {
	return func(cfg *computeConfig) {
		if ms > 0 {
			cfg.pnnThresholdMs = ms
		}
	}
}

// Compute calculates the time-domain HRV metrics over the valid entries
// of the interval series. It is a pure function: identical input yields
// bit-identical output.
//
// Successive differences are taken only between consecutive valid
// entries; an invalid interval breaks the pairing and differences are
// never bridged across it. Returns [ErrInsufficientData] when no valid
// interval exists.
func Compute(intervals []Interval, opts ...Option) (Report, error) {
	cfg := computeConfig{pnnThresholdMs: defaultPNNThresholdMs}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	valid := make([]float64, 0, len(intervals))
	excluded := 0
	for _, iv := range intervals {
		if iv.Valid {
			valid = append(valid, iv.Ms)
		} else {
			excluded++
		}
	}

	if len(valid) == 0 {
		return Report{ExcludedCount: excluded}, ErrInsufficientData
	}

	diffs := successiveDiffs(intervals)

	rep := Report{
		MeanRRMs:      stats.Mean(valid),
		SDNNMs:        stats.SampleStdDev(valid),
		BeatCount:     len(valid) + 1,
		ExcludedCount: excluded,
	}
	if rep.MeanRRMs > 0 {
		rep.MeanHeartRateBPM = 60000 / rep.MeanRRMs
	}

	if len(diffs) >= 2 {
		var sumSq float64
		for _, d := range diffs {
			sumSq += d * d
		}
		rep.RMSSDMs = math.Sqrt(sumSq / float64(len(diffs)))
	}

	if len(diffs) > 0 {
		over := 0
		for _, d := range diffs {
			if math.Abs(d) > cfg.pnnThresholdMs {
				over++
			}
		}
		rep.PNN50Pct = 100 * float64(over) / float64(len(diffs))
	}

	return rep, nil
}

// successiveDiffs returns interval differences over consecutive valid
// pairs only. An invalid entry breaks the chain: its neighbors are not
// paired with each other.
func successiveDiffs(intervals []Interval) []float64 {
	var diffs []float64
	for i := 1; i < len(intervals); i++ {
		if intervals[i-1].Valid && intervals[i].Valid {
			diffs = append(diffs, intervals[i].Ms-intervals[i-1].Ms)
		}
	}
	return diffs
}
