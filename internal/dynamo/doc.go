// Package dynamo provides the geometric and runtime primitives shared by the
// flocking simulation.
//
// The package defines:
//
//   - [Vec2]: 2D vector with zero-safe normalization
//   - [Bounds]: axis-aligned toroidal world rectangle
//   - [ParallelFor]: contiguous range partitioning across workers
//   - domain errors for configuration and simulation failures
//
// # Example
//
//	b := dynamo.CenteredBounds(1920, 1080)
//	p := b.Wrap(dynamo.Vec2{X: 961, Y: 0}) // (-960, 0)
//
// # Thread Safety
//
// [Vec2] and [Bounds] are plain values and safe to copy between goroutines.
package dynamo
