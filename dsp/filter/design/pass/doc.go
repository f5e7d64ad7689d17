// Package pass designs cascaded band-pass filters as biquad sections.
//
// Designs follow the classical route: an analog Butterworth prototype is
// transformed to a band-pass, mapped to the z-plane with the bilinear
// transform using pre-warped corner frequencies, and factored into
// second-order sections consumable by dsp/filter/biquad.
package pass
