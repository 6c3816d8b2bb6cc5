// Package hrv derives RR-interval series from detected R peaks and
// computes time-domain heart rate variability metrics over them.
package hrv

// Interval is one RR interval derived from a consecutive R-peak pair.
// Valid is false when the interval falls outside the plausible
// physiological range; such intervals stay in the series (preserving
// positional correspondence to the peak pairs for plotting) but are
// excluded from all metrics.
type Interval struct {
	Ms    float64
	Valid bool
}

// PlausibleRange bounds physiologically valid RR intervals, inclusive,
// in milliseconds.
type PlausibleRange struct {
	MinMs float64
	MaxMs float64
}

// DefaultPlausibleRange rejects intervals below 300 ms (200 bpm) or above
// 2000 ms (30 bpm).
func DefaultPlausibleRange() PlausibleRange {
	return PlausibleRange{MinMs: 300, MaxMs: 2000}
}

// Contains reports whether ms lies inside the range.
func (r PlausibleRange) Contains(ms float64) bool {
	return ms >= r.MinMs && ms <= r.MaxMs
}

// Intervals converts peak sample indices into an RR-interval series.
// Fewer than two peaks yield an empty series. The result has exactly
// len(peaks)-1 entries, one per consecutive peak pair.
func Intervals(peaks []int, sampleRate float64, rng PlausibleRange) []Interval {
	if len(peaks) < 2 || sampleRate <= 0 {
		return nil
	}

	out := make([]Interval, len(peaks)-1)
	for i := 1; i < len(peaks); i++ {
		ms := float64(peaks[i]-peaks[i-1]) / sampleRate * 1000
		out[i-1] = Interval{
			Ms:    ms,
			Valid: rng.Contains(ms),
		}
	}
	return out
}
