package sim

import "github.com/san-kum/shoal/internal/flock"

// Metric reduces the flock to one number per frame. Observe returns the
// instantaneous sample; Value reports the aggregate since the last Reset.
type Metric interface {
	Name() string
	Observe(f *flock.Flock, t float64) float64
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(frame int, f *flock.Flock, t float64)
}

type Config struct {
	Dt      float64
	Frames  int
	Count   int
	Seed    int64
	Workers int

	// ValidateState stops the run at the first agent with NaN or Inf
	// position or velocity.
	ValidateState bool
}

type Result struct {
	Times       []float64
	Series      map[string][]float64
	Metrics     map[string]float64
	FramesTaken int
	Errors      []error
}
