package flock

import "github.com/san-kum/shoal/internal/dynamo"

// minAgentsPerWorker keeps tiny flocks on one goroutine for the per-agent
// stages.
const minAgentsPerWorker = 64

// Pipeline runs one frame of the four stages with a barrier between each.
// Workers <= 1 runs everything on the calling goroutine.
type Pipeline struct {
	Workers int

	scratch [][]Accumulators
}

func NewPipeline(workers int) *Pipeline {
	return &Pipeline{Workers: workers}
}

// Step advances f by one frame of dt seconds using p.
func (pl *Pipeline) Step(f *Flock, p Params, dt float64) {
	agents := f.Agents()
	if len(agents) == 0 {
		return
	}
	obstacles := f.Obstacles()
	bounds := f.Bounds()

	if pl.Workers <= 1 {
		Accumulate(agents, p)
		AvoidObstacles(agents, obstacles)
		Steer(agents, p)
		Integrate(agents, p, bounds, dt)
		return
	}

	pl.scratch = AccumulateParallel(agents, p, pl.Workers, pl.scratch)

	dynamo.ParallelFor(len(agents), pl.Workers, minAgentsPerWorker, func(_, start, end int) {
		AvoidObstacles(agents[start:end], obstacles)
	})
	dynamo.ParallelFor(len(agents), pl.Workers, minAgentsPerWorker, func(_, start, end int) {
		Steer(agents[start:end], p)
	})
	dynamo.ParallelFor(len(agents), pl.Workers, minAgentsPerWorker, func(_, start, end int) {
		Integrate(agents[start:end], p, bounds, dt)
	})
}
