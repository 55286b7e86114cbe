package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shoal/internal/config"
	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
	"github.com/san-kum/shoal/internal/sim"
)

// Scenario scripts one continuous flock run through a sequence of steps.
// The flock is never rebuilt between steps; each step only changes the
// desired count, parameters or obstacles and then advances its frames.
type Scenario struct {
	Name        string              `yaml:"name"`
	Description string              `yaml:"description"`
	Seed        int64               `yaml:"seed"`
	Dt          float64             `yaml:"dt"`
	Workers     int                 `yaml:"workers"`
	Bounds      config.BoundsConfig `yaml:"bounds"`
	Steps       []ScenarioStep      `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario. Zero Count keeps the
// previous desired count; Params are applied on top of the previous step's.
type ScenarioStep struct {
	Label          string             `yaml:"label"`
	Frames         int                `yaml:"frames"`
	Count          int                `yaml:"count"`
	Params         map[string]float64 `yaml:"params"`
	Obstacles      [][2]float64       `yaml:"obstacles"`
	ClearObstacles bool               `yaml:"clear_obstacles"`
}

// StepResult holds the flock state summary at the end of a step.
type StepResult struct {
	Label     string
	Frames    int
	Count     int
	Obstacles int
	Time      float64
	Metrics   map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	var errs []error
	if len(s.Steps) == 0 {
		errs = append(errs, fmt.Errorf("%w: scenario has no steps", dynamo.ErrParameterBounds))
	}
	if s.Dt < 0 {
		errs = append(errs, fmt.Errorf("%w: dt must not be negative, got %g", dynamo.ErrParameterBounds, s.Dt))
	}
	if s.Bounds.Width < 0 || s.Bounds.Height < 0 {
		errs = append(errs, fmt.Errorf("%w: bounds %gx%g", dynamo.ErrParameterBounds, s.Bounds.Width, s.Bounds.Height))
	}
	for i, step := range s.Steps {
		if step.Frames <= 0 {
			errs = append(errs, fmt.Errorf("%w: step %d: frames must be positive, got %d", dynamo.ErrParameterBounds, i+1, step.Frames))
		}
		if step.Count != 0 && !flock.CountRange.Contains(float64(step.Count)) {
			errs = append(errs, fmt.Errorf("%w: step %d: count=%d not in [%g, %g]",
				dynamo.ErrParameterBounds, i+1, step.Count, flock.CountRange.Min, flock.CountRange.Max))
		}
	}
	return errors.Join(errs...)
}

func (s *Scenario) bounds() dynamo.Bounds {
	w, h := s.Bounds.Width, s.Bounds.Height
	if w == 0 || h == 0 {
		w, h = config.DefaultWidth, config.DefaultHeight
	}
	return dynamo.CenteredBounds(w, h)
}

// Run executes all steps of the scenario starting from base parameters.
// newMetrics is called once; the metrics observe every frame of every step
// and their latest sample is reported at the end of each step.
func Run(ctx context.Context, s *Scenario, base flock.Params, newMetrics func() []sim.Metric) ([]StepResult, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	dt := s.Dt
	if dt == 0 {
		dt = config.DefaultDt
	}
	seed := s.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	f := flock.New(s.bounds())
	pop := flock.NewPopulation(seed)
	pipe := flock.NewPipeline(dynamo.Workers(s.Workers))
	params := base
	count := config.DefaultCount

	var metrics []sim.Metric
	if newMetrics != nil {
		metrics = newMetrics()
	}

	slog.Info("scenario start", "name", s.Name, "steps", len(s.Steps), "seed", seed)

	results := make([]StepResult, 0, len(s.Steps))
	t := 0.0
	for i, step := range s.Steps {
		for name, v := range step.Params {
			if err := params.SetParam(name, v); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
		if step.Count != 0 {
			count = step.Count
		}
		if step.ClearObstacles {
			f.ClearObstacles()
		}
		for _, o := range step.Obstacles {
			p := dynamo.Vec2{X: o[0], Y: o[1]}
			if !f.PlaceObstacle(p) {
				slog.Debug("scenario obstacle outside bounds", "step", i+1, "x", p.X, "y", p.Y)
			}
		}

		latest := make(map[string]float64, len(metrics))
		for frame := 0; frame < step.Frames; frame++ {
			select {
			case <-ctx.Done():
				return results, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
			default:
			}

			pop.Resize(f, count)
			pipe.Step(f, params, dt)
			t += dt

			for _, m := range metrics {
				latest[m.Name()] = m.Observe(f, t)
			}
		}

		label := step.Label
		if label == "" {
			label = fmt.Sprintf("step %d", i+1)
		}
		results = append(results, StepResult{
			Label:     label,
			Frames:    step.Frames,
			Count:     f.Len(),
			Obstacles: len(f.Obstacles()),
			Time:      t,
			Metrics:   latest,
		})
		slog.Debug("scenario step done", "step", label, "count", f.Len(), "t", t)
	}

	slog.Info("scenario finished", "name", s.Name, "time", t)
	return results, nil
}
