package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
	"github.com/san-kum/shoal/internal/sim"
)

type countMetric struct{ last float64 }

func (m *countMetric) Name() string { return "count" }

func (m *countMetric) Observe(f *flock.Flock, t float64) float64 {
	m.last = float64(f.Len())
	return m.last
}

func (m *countMetric) Value() float64 { return m.last }
func (m *countMetric) Reset()         { m.last = 0 }

func countMetrics() []sim.Metric { return []sim.Metric{&countMetric{}} }

const scenarioYAML = `
name: grow
description: grow the school then add a rock
seed: 3
dt: 0.02
steps:
  - label: start
    frames: 5
    count: 200
  - frames: 5
    count: 300
    params:
      align_factor: 0.5
    obstacles: [[0, 0]]
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grow.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s.Name != "grow" || s.Seed != 3 || s.Dt != 0.02 {
		t.Errorf("header mismatch: %+v", s)
	}
	if len(s.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(s.Steps))
	}
	if s.Steps[1].Params["align_factor"] != 0.5 {
		t.Errorf("params not parsed: %v", s.Steps[1].Params)
	}
	if len(s.Steps[1].Obstacles) != 1 {
		t.Errorf("obstacles not parsed: %v", s.Steps[1].Obstacles)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("scenario should be valid: %v", err)
	}
}

func TestLoadScenarioMissing(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestScenarioValidate(t *testing.T) {
	tests := []struct {
		name string
		s    Scenario
	}{
		{"no steps", Scenario{}},
		{"zero frames", Scenario{Steps: []ScenarioStep{{Frames: 0}}}},
		{"count too low", Scenario{Steps: []ScenarioStep{{Frames: 1, Count: 100}}}},
		{"count too high", Scenario{Steps: []ScenarioStep{{Frames: 1, Count: 5000}}}},
		{"negative dt", Scenario{Dt: -1, Steps: []ScenarioStep{{Frames: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	s := &Scenario{
		Name: "test",
		Seed: 1,
		Dt:   0.01,
		Steps: []ScenarioStep{
			{Label: "start", Frames: 3, Count: 200},
			{Frames: 3, Count: 300, Params: map[string]float64{"align_factor": 0.5}, Obstacles: [][2]float64{{0, 0}, {1e6, 0}}},
			{Frames: 2, ClearObstacles: true},
		},
	}

	results, err := Run(context.Background(), s, flock.DefaultParams(), countMetrics)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	wantCount := []int{200, 300, 300}
	wantObstacles := []int{0, 1, 0}
	for i, r := range results {
		if r.Count != wantCount[i] {
			t.Errorf("step %d: count %d, want %d", i+1, r.Count, wantCount[i])
		}
		if r.Obstacles != wantObstacles[i] {
			t.Errorf("step %d: obstacles %d, want %d", i+1, r.Obstacles, wantObstacles[i])
		}
		if r.Metrics["count"] != float64(wantCount[i]) {
			t.Errorf("step %d: metric count %v", i+1, r.Metrics["count"])
		}
	}

	if results[0].Label != "start" || results[1].Label != "step 2" {
		t.Errorf("labels: %q %q", results[0].Label, results[1].Label)
	}
	if math.Abs(results[2].Time-0.08) > 1e-9 {
		t.Errorf("expected t=0.08, got %v", results[2].Time)
	}
}

func TestRunScenarioUnknownParam(t *testing.T) {
	s := &Scenario{Seed: 1, Steps: []ScenarioStep{{Frames: 1, Params: map[string]float64{"wiggle": 1}}}}

	_, err := Run(context.Background(), s, flock.DefaultParams(), nil)
	if !errors.Is(err, dynamo.ErrUnknownParameter) {
		t.Errorf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestRunScenarioCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Scenario{Seed: 1, Steps: []ScenarioStep{{Frames: 10}}}
	results, err := Run(ctx, s, flock.DefaultParams(), nil)
	if !errors.Is(err, dynamo.ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no completed steps, got %d", len(results))
	}
}
