// Package ecg defines the value types shared across the ECG analysis
// pipeline.
package ecg

// Buffer is one complete acquisition: an ordered sample sequence and the
// fixed rate it was captured at. It is treated as immutable once built;
// every pipeline stage derives new values from it without modifying it.
type Buffer struct {
	Samples    []float64
	SampleRate float64 // Hz
}

// NewBuffer wraps samples captured at sampleRate into a Buffer.
func NewBuffer(samples []float64, sampleRate float64) Buffer {
	return Buffer{Samples: samples, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (b Buffer) Len() int {
	return len(b.Samples)
}

// DurationSeconds returns the capture length in seconds, 0 when the rate
// is not positive.
func (b Buffer) DurationSeconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / b.SampleRate
}

// TimeAt returns the capture-relative time of sample i in seconds.
func (b Buffer) TimeAt(i int) float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(i) / b.SampleRate
}
