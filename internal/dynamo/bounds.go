package dynamo

import "math/rand"

// Bounds is the rectangle [A, B] of the toroidal world. A is the min corner.
type Bounds struct {
	A, B Vec2
}

// DefaultBounds is the world used before any viewport size is known.
var DefaultBounds = Bounds{A: Vec2{-500, -500}, B: Vec2{500, 500}}

// CenteredBounds returns bounds centered at the origin with half-extents of
// half the viewport width and height.
func CenteredBounds(width, height float64) Bounds {
	return Bounds{
		A: Vec2{-width / 2, -height / 2},
		B: Vec2{width / 2, height / 2},
	}
}

func (b Bounds) Width() float64  { return b.B.X - b.A.X }
func (b Bounds) Height() float64 { return b.B.Y - b.A.Y }

// Contains reports whether p lies strictly inside the bounds.
func (b Bounds) Contains(p Vec2) bool {
	return p.X > b.A.X && p.X < b.B.X && p.Y > b.A.Y && p.Y < b.B.Y
}

// RandomPoint draws a point uniformly from the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) Vec2 {
	return Vec2{
		X: rng.Float64()*b.Width() + b.A.X,
		Y: rng.Float64()*b.Height() + b.A.Y,
	}
}

// Wrap teleports p to the opposite edge on each axis it has left. Axes are
// independent and a point exactly on an edge is left alone.
func (b Bounds) Wrap(p Vec2) Vec2 {
	if p.X < b.A.X {
		p.X = b.B.X
	} else if p.X > b.B.X {
		p.X = b.A.X
	}
	if p.Y < b.A.Y {
		p.Y = b.B.Y
	} else if p.Y > b.B.Y {
		p.Y = b.A.Y
	}
	return p
}
