// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Multiple sections are
// cascaded via [Chain] for higher-order filters such as the Butterworth
// band-pass used ahead of phase-based delay estimation.
//
// [Chain.ProcessZeroPhase] runs a cascade forward and backward over a whole
// record so that the result carries no phase shift and no group delay.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
