// Package sim runs the end-to-end direction-of-arrival simulation: time
// axis, two-sensor synthesis, zero-phase band-pass filtering, phase-based
// delay estimation and angle inversion.
//
// [Run] is pure given its [Params]; the same seed always yields the same
// [Result]. [MonteCarlo] and [AngleSweep] repeat runs with independent
// seeds on a bounded worker pool and summarize the angle error.
package sim
