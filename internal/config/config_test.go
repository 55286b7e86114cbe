package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Count != 200 {
		t.Errorf("expected count 200, got %d", cfg.Count)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Params() != flock.DefaultParams() {
		t.Errorf("params mismatch: %+v", cfg.Params())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shoal.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Count = 321
	cfg.Physics.MaxForce = 0.25
	cfg.Obstacles = [][2]float64{{10, 20}}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Seed != 99 || got.Count != 321 || got.Physics.MaxForce != 0.25 {
		t.Errorf("round trip lost values: %+v", got)
	}
	if len(got.Obstacles) != 1 || got.Obstacles[0] != [2]float64{10, 20} {
		t.Errorf("obstacles lost: %v", got.Obstacles)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "count: 500\nphysics:\n  max_force: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Count != 500 || cfg.Physics.MaxForce != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Simulation.VelocityMultiplier != 60 || cfg.Bounds.Width != DefaultWidth {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"count too low", func(c *Config) { c.Count = 10 }},
		{"count too high", func(c *Config) { c.Count = 5000 }},
		{"radius negative", func(c *Config) { c.Physics.AlignRadius = -1 }},
		{"force too large", func(c *Config) { c.Physics.MaxForce = 2 }},
		{"multiplier too large", func(c *Config) { c.Simulation.AccelerationMultiplier = 101 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"obstacle outside", func(c *Config) { c.Obstacles = [][2]float64{{5000, 0}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("expected ErrParameterBounds, got %v", err)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Count = 50
	cfg.Physics.VelocityMag = 40
	cfg.Clamp()

	if cfg.Count != 200 || cfg.Physics.VelocityMag != 10 {
		t.Errorf("clamp failed: count=%d vmag=%g", cfg.Count, cfg.Physics.VelocityMag)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("school")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Count != 400 || cfg.Physics.AlignFactor != 1.0 {
		t.Errorf("preset not applied: %+v", cfg)
	}
	if DefaultConfig().Count != DefaultCount {
		t.Error("preset mutated defaults")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsAreValid(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestLoadIntoKeepsPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("count: 250\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("reef")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Count != 250 {
		t.Errorf("expected count 250, got %d", cfg.Count)
	}
	if len(cfg.Obstacles) != 4 {
		t.Errorf("preset obstacles lost: %v", cfg.Obstacles)
	}
}

func TestLoadIntoMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadInto(filepath.Join(t.TempDir(), "nope.yaml"), cfg); err == nil {
		t.Error("expected error for missing file")
	}
	if cfg.Count != DefaultCount {
		t.Errorf("config changed on failed load: %+v", cfg)
	}
}
