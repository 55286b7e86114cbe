package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/shoal/internal/dynamo"
)

// PowerSpectrum returns |X_k|^2 / n for k in [0, n/2] of the mean-removed,
// Hann-windowed series. Any length is accepted.
func PowerSpectrum(series []float64) ([]float64, error) {
	n := len(series)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", dynamo.ErrEmptySeries, n)
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	windowed := make([]float64, n)
	for i, v := range series {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = (v - mean) * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2+1)
	for k := range ps {
		mag := cmplx.Abs(spectrum[k])
		ps[k] = mag * mag / float64(n)
	}
	return ps, nil
}

// Frequencies returns the bin centre frequencies matching PowerSpectrum for
// n samples taken dt apart.
func Frequencies(n int, dt float64) []float64 {
	freqs := make([]float64, n/2+1)
	for k := range freqs {
		freqs[k] = float64(k) / (float64(n) * dt)
	}
	return freqs
}

// DominantFrequency reports the frequency and power of the strongest bin,
// ignoring DC.
func DominantFrequency(series []float64, dt float64) (float64, float64, error) {
	if dt <= 0 {
		return 0, 0, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, dt)
	}
	ps, err := PowerSpectrum(series)
	if err != nil {
		return 0, 0, err
	}

	best, power := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > power {
			best, power = k, ps[k]
		}
	}
	return float64(best) / (float64(len(series)) * dt), power, nil
}

type Summary struct {
	Min, Max, Mean, Std float64
	N                   int
}

func Summarize(series []float64) (Summary, error) {
	if len(series) == 0 {
		return Summary{}, dynamo.ErrEmptySeries
	}
	s := Summary{Min: series[0], Max: series[0], N: len(series)}
	for _, v := range series {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		s.Mean += v
	}
	s.Mean /= float64(s.N)
	for _, v := range series {
		s.Std += (v - s.Mean) * (v - s.Mean)
	}
	s.Std = math.Sqrt(s.Std / float64(s.N))
	return s, nil
}
