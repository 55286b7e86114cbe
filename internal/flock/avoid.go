package flock

// AvoidObstacles adds a unit repulsion from every obstacle closer than
// AvoidanceRadius into each agent's avoid accumulator. Agents sitting exactly
// on an obstacle are skipped for that obstacle.
func AvoidObstacles(agents []Agent, obstacles []Obstacle) {
	if len(obstacles) == 0 {
		return
	}
	for i := range agents {
		a := &agents[i]
		for _, o := range obstacles {
			d := a.Position.Dist(o.Position)
			if d == 0 || d >= AvoidanceRadius {
				continue
			}
			a.Accum.Avoid = a.Accum.Avoid.Add(a.Position.Sub(o.Position).Div(d))
			a.Accum.AvoidCount++
		}
	}
}
