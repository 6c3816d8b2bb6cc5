// Package design computes biquad coefficients for the filters used in ECG
// conditioning.
//
// [Lowpass] and [Highpass] produce single second-order sections from the
// standard RBJ cookbook formulas. [ButterworthLP] and [ButterworthHP]
// build maximally-flat cascades of arbitrary order by assigning each
// section the appropriate Butterworth quality factor; odd orders get a
// trailing first-order section.
//
// The processing runtime for the resulting coefficients lives in
// dsp/filter/biquad.
package design
