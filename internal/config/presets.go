package config

import (
	"sort"

	"github.com/san-kum/shoal/internal/flock"
)

// Presets are named starting points for a run. Each entry only overrides
// values that differ from DefaultConfig.
var Presets = map[string]func(*Config){
	"reference": func(c *Config) {},
	"school": func(c *Config) {
		c.Count = 400
		c.Physics.AlignFactor = 1.0
		c.Physics.CohesionFactor = 0.4
		c.Physics.AlignRadius = 80
	},
	"swarm": func(c *Config) {
		c.Count = 600
		c.Physics.AlignFactor = 0
		c.Physics.CohesionFactor = 0.6
		c.Physics.SeparationFactor = 0.4
		c.Physics.CohesionRadius = 100
	},
	"scatter": func(c *Config) {
		c.Count = 300
		c.Physics.SeparationRadius = 60
		c.Physics.SeparationFactor = 3
		c.Physics.CohesionFactor = 0
	},
	"crowd": func(c *Config) {
		c.Count = int(flock.CountRange.Max)
		c.Bounds = BoundsConfig{Width: 1280, Height: 720}
		c.Workers = 0
	},
	"reef": func(c *Config) {
		c.Obstacles = [][2]float64{{-200, 0}, {0, 120}, {200, 0}, {0, -120}}
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
