package flock

import (
	"log/slog"
	"math/rand"

	"github.com/san-kum/shoal/internal/dynamo"
)

// SpawnVelocityRange is the half-width of the uniform range for each initial
// velocity component.
const SpawnVelocityRange = 4.0

// Population creates and removes agents to match a desired count.
type Population struct {
	rng           *rand.Rand
	VelocityRange float64
}

func NewPopulation(seed int64) *Population {
	return &Population{
		rng:           rand.New(rand.NewSource(seed)),
		VelocityRange: SpawnVelocityRange,
	}
}

// NewAgent draws a position uniformly in b and each velocity component
// uniformly in [-VelocityRange, VelocityRange).
func (p *Population) NewAgent(b dynamo.Bounds) Agent {
	vel := dynamo.Vec2{
		X: p.rng.Float64()*2*p.VelocityRange - p.VelocityRange,
		Y: p.rng.Float64()*2*p.VelocityRange - p.VelocityRange,
	}
	return Agent{
		Position:    b.RandomPoint(p.rng),
		Velocity:    vel,
		Orientation: vel.Angle(),
	}
}

// Resize spawns or drops agents until f holds desired agents. Excess agents
// are dropped from the end of the arena. Must not run during a frame.
func (p *Population) Resize(f *Flock, desired int) (added, removed int) {
	if desired < 0 {
		desired = 0
	}
	cur := f.Len()
	switch {
	case cur < desired:
		b := f.Bounds()
		for i := cur; i < desired; i++ {
			f.Spawn(p.NewAgent(b))
		}
		added = desired - cur
	case cur > desired:
		removed = f.Truncate(desired)
	default:
		return 0, 0
	}
	slog.Debug("population resized", "from", cur, "to", desired, "added", added, "removed", removed)
	return added, removed
}
