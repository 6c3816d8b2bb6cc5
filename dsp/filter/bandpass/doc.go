// Package bandpass designs and applies the Butterworth band-pass filter
// used to condition raw ECG captures before beat detection.
//
// The band-pass is realized as a highpass cascade at the low cutoff
// followed by a lowpass cascade at the high cutoff, both designed in
// dsp/filter/design. [Filter.ApplyZeroPhase] runs the cascade forward and
// backward over the buffer so the output has zero net phase shift: peak
// timing in the filtered signal matches the raw waveform, which the
// downstream beat detector depends on.
package bandpass
