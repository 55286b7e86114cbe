// Package analysis characterizes stored metric series.
//
//   - [PowerSpectrum]: Hann-windowed one-sided power spectrum
//   - [DominantFrequency]: strongest non-DC frequency of a series
//   - [Summarize]: min, max, mean and standard deviation
//
// A flock that settles into a rotating mill shows up as a sharp peak in the
// spectrum of its polarization series:
//
//	freq, _, err := analysis.DominantFrequency(series, dt)
package analysis
