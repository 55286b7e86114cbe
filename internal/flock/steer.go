package flock

import "github.com/san-kum/shoal/internal/dynamo"

// steering turns an averaged target into a weighted unit correction away
// from the current velocity. A target equal to the velocity yields zero.
func steering(target, velocity dynamo.Vec2, weight float64) dynamo.Vec2 {
	return target.Sub(velocity).Normalize().Scale(weight)
}

// SteeringForce combines an agent's accumulators into one force of magnitude
// exactly p.MaxForce, or zero when no channel contributes.
func SteeringForce(a *Agent, p *Params) dynamo.Vec2 {
	acc := &a.Accum
	force := dynamo.Zero

	if acc.SepCount > 0 {
		avg := acc.Sep.Div(float64(acc.SepCount))
		force = force.Add(steering(avg, a.Velocity, p.SeparationFactor))
	}

	if acc.AlignCount > 0 {
		avg := acc.Align.Div(float64(acc.AlignCount))
		force = force.Add(steering(avg, a.Velocity, p.AlignFactor))
	}

	if acc.CohesionCount > 0 {
		// steer toward the neighbour centroid relative to our own position
		centroid := acc.Cohesion.Div(float64(acc.CohesionCount))
		force = force.Add(steering(centroid.Sub(a.Position), a.Velocity, p.CohesionFactor))
	}

	if acc.AvoidCount > 0 {
		avg := acc.Avoid.Div(float64(acc.AvoidCount))
		force = force.Add(steering(avg, a.Velocity, AvoidanceFactor))
	}

	if force.Len() > 0 {
		force = force.WithLen(p.MaxForce)
	}
	return force
}

// Steer sets each agent's acceleration from its accumulators and clears the
// accumulators.
func Steer(agents []Agent, p Params) {
	for i := range agents {
		a := &agents[i]
		a.Acceleration = SteeringForce(a, &p)
		a.Accum.Reset()
	}
}
