package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

const (
	DefaultCount  = 200
	DefaultDt     = 1.0 / 60
	DefaultFrames = 600
	DefaultWidth  = 1920
	DefaultHeight = 1080
)

type Config struct {
	Seed       int64            `yaml:"seed"`
	Count      int              `yaml:"count"`
	Dt         float64          `yaml:"dt"`
	Frames     int              `yaml:"frames"`
	Workers    int              `yaml:"workers"`
	Bounds     BoundsConfig     `yaml:"bounds"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Obstacles  [][2]float64     `yaml:"obstacles,omitempty"`
}

type BoundsConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	AlignRadius      float64 `yaml:"align_radius"`
	CohesionRadius   float64 `yaml:"cohesion_radius"`
	SeparationRadius float64 `yaml:"separation_radius"`
	AlignFactor      float64 `yaml:"align_factor"`
	CohesionFactor   float64 `yaml:"cohesion_factor"`
	SeparationFactor float64 `yaml:"separation_factor"`
	VelocityMag      float64 `yaml:"velocity_mag"`
	MaxForce         float64 `yaml:"max_force"`
}

type SimulationConfig struct {
	VelocityMultiplier     float64 `yaml:"velocity_multiplier"`
	AccelerationMultiplier float64 `yaml:"acceleration_multiplier"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		Count:   DefaultCount,
		Dt:      DefaultDt,
		Frames:  DefaultFrames,
		Workers: 1,
		Bounds:  BoundsConfig{Width: DefaultWidth, Height: DefaultHeight},
	}
	cfg.SetParams(flock.DefaultParams())
	return cfg
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto unmarshals the file over cfg; fields absent from the file keep
// their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	slog.Debug("config loaded", "path", path, "count", cfg.Count, "frames", cfg.Frames)
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the physics and simulation sections into pipeline params.
func (c *Config) Params() flock.Params {
	return flock.Params{
		SeparationRadius:       c.Physics.SeparationRadius,
		AlignRadius:            c.Physics.AlignRadius,
		CohesionRadius:         c.Physics.CohesionRadius,
		SeparationFactor:       c.Physics.SeparationFactor,
		AlignFactor:            c.Physics.AlignFactor,
		CohesionFactor:         c.Physics.CohesionFactor,
		VelocityMag:            c.Physics.VelocityMag,
		MaxForce:               c.Physics.MaxForce,
		VelocityMultiplier:     c.Simulation.VelocityMultiplier,
		AccelerationMultiplier: c.Simulation.AccelerationMultiplier,
	}
}

func (c *Config) SetParams(p flock.Params) {
	c.Physics = PhysicsConfig{
		AlignRadius:      p.AlignRadius,
		CohesionRadius:   p.CohesionRadius,
		SeparationRadius: p.SeparationRadius,
		AlignFactor:      p.AlignFactor,
		CohesionFactor:   p.CohesionFactor,
		SeparationFactor: p.SeparationFactor,
		VelocityMag:      p.VelocityMag,
		MaxForce:         p.MaxForce,
	}
	c.Simulation = SimulationConfig{
		VelocityMultiplier:     p.VelocityMultiplier,
		AccelerationMultiplier: p.AccelerationMultiplier,
	}
}

// ResolvedSeed returns Seed, or a time-based seed when Seed is 0.
func (c *Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c *Config) WorldBounds() dynamo.Bounds {
	return dynamo.CenteredBounds(c.Bounds.Width, c.Bounds.Height)
}

func (c *Config) ObstaclePoints() []dynamo.Vec2 {
	pts := make([]dynamo.Vec2, len(c.Obstacles))
	for i, o := range c.Obstacles {
		pts[i] = dynamo.Vec2{X: o[0], Y: o[1]}
	}
	return pts
}

// Validate reports every out-of-range field.
func (c *Config) Validate() error {
	var errs []error
	if !flock.CountRange.Contains(float64(c.Count)) {
		errs = append(errs, fmt.Errorf("%w: count=%d not in [%g, %g]",
			dynamo.ErrParameterBounds, c.Count, flock.CountRange.Min, flock.CountRange.Max))
	}
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrParameterBounds, c.Dt))
	}
	if c.Frames <= 0 {
		errs = append(errs, fmt.Errorf("%w: frames must be positive, got %d", dynamo.ErrParameterBounds, c.Frames))
	}
	if c.Bounds.Width <= 0 || c.Bounds.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: bounds %gx%g", dynamo.ErrParameterBounds, c.Bounds.Width, c.Bounds.Height))
	}
	p := c.Params()
	values := p.GetParams()
	for _, name := range flock.ParamNames {
		r, _ := flock.ParamRange(name)
		if v := values[name]; !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%w: %s=%g not in [%g, %g]", dynamo.ErrParameterBounds, name, v, r.Min, r.Max))
		}
	}
	b := c.WorldBounds()
	for i, o := range c.ObstaclePoints() {
		if !b.Contains(o) {
			errs = append(errs, fmt.Errorf("%w: obstacle %d at (%g, %g) outside bounds", dynamo.ErrParameterBounds, i, o.X, o.Y))
		}
	}
	return errors.Join(errs...)
}

// Clamp forces count and tunable parameters into their documented ranges.
func (c *Config) Clamp() {
	c.Count = int(flock.CountRange.Clamp(float64(c.Count)))
	c.SetParams(c.Params().Clamped())
}
