// Package bandpass isolates a narrow band around a tone with a zero-phase
// Butterworth band-pass filter.
//
// A Filter is designed once for a sample rate, centre frequency, bandwidth
// and prototype order, and then applied to whole records. Apply runs the
// cascade forward and backward so that the filtered channels of a sensor
// array keep their relative timing.
package bandpass
