// Package flock implements the per-frame boids pipeline for a population of
// fish in a bounded toroidal plane.
//
// A frame runs four stages separated by barriers:
//
//   - [Accumulate]: all-pairs separation, alignment and cohesion sums
//   - [AvoidObstacles]: per-agent repulsion sums from point obstacles
//   - [Steer]: accumulators to one capped steering force, accumulators cleared
//   - [Integrate]: velocity, speed cap, position, heading, wrap
//
// [Pipeline] runs the stages in order, optionally partitioning the pair scan
// across workers with per-worker accumulators merged before steering.
//
// # Example
//
//	f := flock.New(dynamo.DefaultBounds)
//	pop := flock.NewPopulation(42)
//	pop.Resize(f, 200)
//	pl := flock.NewPipeline(1)
//	pl.Step(f, flock.DefaultParams(), 1.0/60)
//
// # Thread Safety
//
// A [Flock] is not safe for concurrent use. Population changes and obstacle
// placement must happen between calls to [Pipeline.Step].
package flock
