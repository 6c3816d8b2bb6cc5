// Package spectrum provides frequency-domain analysis of ECG recordings.
//
// [Analyze] computes a one-sided, amplitude-calibrated magnitude spectrum
// of a full recording, intended for diagnostic plots of the conditioning
// filter's effect. [MainsPowerRatio] uses the Goertzel algorithm to
// quantify 50/60 Hz powerline contamination without a full FFT.
package spectrum
