package flock

import "github.com/san-kum/shoal/internal/dynamo"

// Accumulators are the transient per-agent sums written by the scan stages
// and consumed by Steer. They are zero between frames.
type Accumulators struct {
	Sep, Align, Cohesion, Avoid                      dynamo.Vec2
	SepCount, AlignCount, CohesionCount, AvoidCount int
}

func (a *Accumulators) Reset() { *a = Accumulators{} }

func (a Accumulators) IsZero() bool { return a == Accumulators{} }

// Merge adds the sums and counts of o into a.
func (a *Accumulators) Merge(o Accumulators) {
	a.Sep = a.Sep.Add(o.Sep)
	a.Align = a.Align.Add(o.Align)
	a.Cohesion = a.Cohesion.Add(o.Cohesion)
	a.Avoid = a.Avoid.Add(o.Avoid)
	a.SepCount += o.SepCount
	a.AlignCount += o.AlignCount
	a.CohesionCount += o.CohesionCount
	a.AvoidCount += o.AvoidCount
}

// Agent is one simulated fish.
type Agent struct {
	Position     dynamo.Vec2
	Velocity     dynamo.Vec2
	Acceleration dynamo.Vec2

	// Orientation is the heading in radians, for display only.
	Orientation float64

	Accum Accumulators
}

// Obstacle is a static point repellent.
type Obstacle struct {
	Position dynamo.Vec2
}
