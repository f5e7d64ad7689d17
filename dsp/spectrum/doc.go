// Package spectrum provides discrete Fourier transforms of real records and
// spectrum-domain utilities.
//
// [Transform] and [DFT] compute exact N-point transforms for any record
// length and are used where bin positions must match the record length
// (phase measurements, zoomed views). [Analyzer] computes averaged,
// windowed power spectra over power-of-two frames for display. Bin layout
// follows the usual FFT convention: bin k of an N-point transform sits at
// k*Fs/N for k < ceil(N/2) and at (k-N)*Fs/N above.
package spectrum
