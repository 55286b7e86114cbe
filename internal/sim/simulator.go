package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

type Simulator struct {
	params    flock.Params
	bounds    dynamo.Bounds
	obstacles []dynamo.Vec2
	metrics   []Metric
	observers []Observer
}

func New(params flock.Params, bounds dynamo.Bounds) *Simulator {
	return &Simulator{
		params:    params,
		bounds:    bounds,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)        { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)    { s.observers = append(s.observers, o) }
func (s *Simulator) AddObstacle(p dynamo.Vec2) { s.obstacles = append(s.obstacles, p) }
func (s *Simulator) Params() flock.Params      { return s.params }
func (s *Simulator) Bounds() dynamo.Bounds     { return s.bounds }
func (s *Simulator) Obstacles() []dynamo.Vec2  { return s.obstacles }

// setup builds a fresh flock for cfg with the configured obstacles placed.
func (s *Simulator) setup(cfg Config) (*flock.Flock, *flock.Population, *flock.Pipeline) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := flock.New(s.bounds)
	for _, o := range s.obstacles {
		f.PlaceObstacle(o)
	}
	return f, flock.NewPopulation(seed), flock.NewPipeline(dynamo.Workers(cfg.Workers))
}

// Run advances a new flock for cfg.Frames frames. The population is resized
// to cfg.Count before every frame; metrics are sampled after each step.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Times:   make([]float64, 0, cfg.Frames),
		Series:  make(map[string][]float64, len(s.metrics)),
		Metrics: make(map[string]float64, len(s.metrics)),
		Errors:  make([]error, 0),
	}
	for _, m := range s.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, cfg.Frames)
	}

	f, pop, pipe := s.setup(cfg)
	t := 0.0
	start := time.Now()
	slog.Info("run started", "frames", cfg.Frames, "count", cfg.Count, "workers", pipe.Workers, "seed", cfg.Seed)

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		pop.Resize(f, cfg.Count)
		pipe.Step(f, s.params, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if err := validateFlock(f, i, t); err != nil {
				result.Errors = append(result.Errors, err)
				break
			}
		}

		result.FramesTaken++
		result.Times = append(result.Times, t)
		for _, m := range s.metrics {
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Observe(f, t))
		}
		for _, obs := range s.observers {
			obs.OnFrame(i, f, t)
		}
	}

	s.finish(result)
	slog.Info("run finished", "frames", result.FramesTaken, "elapsed", time.Since(start).Round(time.Millisecond))
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrParameterBounds, cfg.Dt)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, cfg.Frames)
	}
	if cfg.Count < 0 {
		return fmt.Errorf("%w: count must not be negative, got %d", dynamo.ErrParameterBounds, cfg.Count)
	}
	return s.params.Validate()
}

func validateFlock(f *flock.Flock, frame int, t float64) error {
	for i, a := range f.Agents() {
		if !a.Position.IsValid() || !a.Velocity.IsValid() {
			return &dynamo.SimulationError{Frame: frame, Time: t, Agent: i, Wrapped: dynamo.ErrInvalidState}
		}
	}
	return nil
}

// RunWithCallback drives frames until cfg.Frames is reached or callback
// returns false. The callback sees the flock after each step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(frame int, f *flock.Flock, t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	f, pop, pipe := s.setup(cfg)
	t := 0.0

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		pop.Resize(f, cfg.Count)
		pipe.Step(f, s.params, cfg.Dt)
		t += cfg.Dt

		if cfg.ValidateState {
			if err := validateFlock(f, i, t); err != nil {
				return err
			}
		}

		if !callback(i, f, t) {
			return nil
		}
	}

	return nil
}
