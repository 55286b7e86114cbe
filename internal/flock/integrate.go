package flock

import "github.com/san-kum/shoal/internal/dynamo"

// Integrate applies each agent's acceleration, forces speed to
// p.VelocityMag, advances and wraps position, updates the heading and clears
// the acceleration.
//
// An agent whose velocity collapses to zero keeps a zero velocity and its
// previous heading.
func Integrate(agents []Agent, p Params, b dynamo.Bounds, dt float64) {
	accScale := dt * p.AccelerationMultiplier
	velScale := dt * p.VelocityMultiplier

	for i := range agents {
		a := &agents[i]

		v := a.Velocity.Add(a.Acceleration.Scale(accScale))
		v = v.WithLen(p.VelocityMag)
		a.Velocity = v

		a.Position = a.Position.Add(v.Scale(velScale))

		if !v.IsZero() {
			a.Orientation = v.Angle()
		}

		a.Position = b.Wrap(a.Position)
		a.Acceleration = dynamo.Zero
	}
}
