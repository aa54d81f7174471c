// Package resample changes the length of sampled signals with the Fourier
// method.
//
// FFT follows the usual spectral resampling convention: the signal is
// periodic, the spectrum is truncated or zero-padded, and an even-length
// Nyquist bin is split or folded. Any input or output length is supported.
package resample
