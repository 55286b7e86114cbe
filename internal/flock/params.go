package flock

import (
	"fmt"

	"github.com/san-kum/shoal/internal/dynamo"
)

// Obstacle avoidance is not tunable.
const (
	AvoidanceRadius = 50.0
	AvoidanceFactor = 10.0
)

// Params are the tunable values read by the force and integration stages.
// They are read once per frame and never written by the pipeline.
type Params struct {
	SeparationRadius float64
	AlignRadius      float64
	CohesionRadius   float64

	SeparationFactor float64
	AlignFactor      float64
	CohesionFactor   float64

	VelocityMag float64
	MaxForce    float64

	VelocityMultiplier     float64
	AccelerationMultiplier float64
}

func DefaultParams() Params {
	return Params{
		SeparationRadius:       25,
		AlignRadius:            50,
		CohesionRadius:         75,
		SeparationFactor:       0.8,
		AlignFactor:            0.1,
		CohesionFactor:         0.1,
		VelocityMag:            1.0,
		MaxForce:               0.1,
		VelocityMultiplier:     60,
		AccelerationMultiplier: 60,
	}
}

// Range is an inclusive interval of accepted values.
type Range struct {
	Min, Max float64
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// CountRange bounds the desired population size.
var CountRange = Range{200, 1000}

// ParamNames lists the tunable parameters in display order.
var ParamNames = []string{
	"separation_radius", "align_radius", "cohesion_radius",
	"separation_factor", "align_factor", "cohesion_factor",
	"velocity_mag", "max_force",
	"velocity_multiplier", "acceleration_multiplier",
}

var paramRanges = map[string]Range{
	"separation_radius":       {0, 100},
	"align_radius":            {0, 100},
	"cohesion_radius":         {0, 100},
	"separation_factor":       {0, 10},
	"align_factor":            {0, 10},
	"cohesion_factor":         {0, 10},
	"velocity_mag":            {0, 10},
	"max_force":               {0, 1},
	"velocity_multiplier":     {0, 100},
	"acceleration_multiplier": {0, 100},
}

// ParamRange returns the accepted range for a parameter name.
func ParamRange(name string) (Range, bool) {
	r, ok := paramRanges[name]
	return r, ok
}

func (p *Params) field(name string) *float64 {
	switch name {
	case "separation_radius":
		return &p.SeparationRadius
	case "align_radius":
		return &p.AlignRadius
	case "cohesion_radius":
		return &p.CohesionRadius
	case "separation_factor":
		return &p.SeparationFactor
	case "align_factor":
		return &p.AlignFactor
	case "cohesion_factor":
		return &p.CohesionFactor
	case "velocity_mag":
		return &p.VelocityMag
	case "max_force":
		return &p.MaxForce
	case "velocity_multiplier":
		return &p.VelocityMultiplier
	case "acceleration_multiplier":
		return &p.AccelerationMultiplier
	}
	return nil
}

func (p *Params) GetParams() map[string]float64 {
	out := make(map[string]float64, len(ParamNames))
	for _, name := range ParamNames {
		out[name] = *p.field(name)
	}
	return out
}

// SetParam updates one parameter by name. Values outside the documented
// range are rejected, not clamped.
func (p *Params) SetParam(name string, value float64) error {
	f := p.field(name)
	if f == nil {
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
	}
	r := paramRanges[name]
	if !r.Contains(value) {
		return fmt.Errorf("%w: %s=%g not in [%g, %g]", dynamo.ErrParameterBounds, name, value, r.Min, r.Max)
	}
	*f = value
	return nil
}

// Validate checks every parameter against its range.
func (p Params) Validate() error {
	for _, name := range ParamNames {
		v := *p.field(name)
		r := paramRanges[name]
		if !r.Contains(v) {
			return fmt.Errorf("%w: %s=%g not in [%g, %g]", dynamo.ErrParameterBounds, name, v, r.Min, r.Max)
		}
	}
	return nil
}

// Clamped returns a copy with every parameter forced into range.
func (p Params) Clamped() Params {
	for _, name := range ParamNames {
		f := p.field(name)
		*f = paramRanges[name].Clamp(*f)
	}
	return p
}
