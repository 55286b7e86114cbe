package flock

import (
	"log/slog"

	"github.com/san-kum/shoal/internal/dynamo"
)

// Flock is the arena of agents and obstacles. Agents are addressed by index;
// an index stays valid until the flock is truncated below it.
type Flock struct {
	agents    []Agent
	obstacles []Obstacle
	bounds    dynamo.Bounds
}

func New(bounds dynamo.Bounds) *Flock {
	return &Flock{bounds: bounds}
}

func (f *Flock) Len() int { return len(f.agents) }

// Agents exposes the backing slice. Callers may mutate agents in place but
// must not append to it.
func (f *Flock) Agents() []Agent { return f.agents }

func (f *Flock) Agent(i int) *Agent { return &f.agents[i] }

// Spawn appends a with cleared accumulators and returns its index.
func (f *Flock) Spawn(a Agent) int {
	a.Accum.Reset()
	f.agents = append(f.agents, a)
	return len(f.agents) - 1
}

// Truncate drops every agent at index n or above and returns how many were
// removed.
func (f *Flock) Truncate(n int) int {
	if n < 0 {
		n = 0
	}
	if n >= len(f.agents) {
		return 0
	}
	removed := len(f.agents) - n
	clear(f.agents[n:])
	f.agents = f.agents[:n]
	return removed
}

func (f *Flock) Obstacles() []Obstacle { return f.obstacles }

func (f *Flock) AddObstacle(p dynamo.Vec2) {
	f.obstacles = append(f.obstacles, Obstacle{Position: p})
}

// PlaceObstacle adds an obstacle at world position p when p is strictly
// inside the bounds. It reports whether one was created.
func (f *Flock) PlaceObstacle(p dynamo.Vec2) bool {
	if !f.bounds.Contains(p) {
		slog.Debug("pointer out of bounds", "x", p.X, "y", p.Y)
		return false
	}
	f.AddObstacle(p)
	slog.Debug("obstacle placed", "x", p.X, "y", p.Y, "obstacles", len(f.obstacles))
	return true
}

func (f *Flock) ClearObstacles() { f.obstacles = f.obstacles[:0] }

func (f *Flock) Bounds() dynamo.Bounds { return f.bounds }

// SetBounds replaces the world rectangle. Agents outside the new bounds are
// wrapped back in by the next Integrate.
func (f *Flock) SetBounds(b dynamo.Bounds) { f.bounds = b }

// Reset removes all agents and obstacles.
func (f *Flock) Reset() {
	f.agents = f.agents[:0]
	f.obstacles = f.obstacles[:0]
}

// PointerToWorld maps a screen pointer (origin top-left, y down) into world
// coordinates. scale is world units per screen unit.
func PointerToWorld(b dynamo.Bounds, cursor dynamo.Vec2, scale float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: cursor.X*scale + b.A.X,
		Y: -(cursor.Y*scale + b.A.Y),
	}
}

// WorldToPointer is the inverse of PointerToWorld.
func WorldToPointer(b dynamo.Bounds, p dynamo.Vec2, scale float64) dynamo.Vec2 {
	return dynamo.Vec2{
		X: (p.X - b.A.X) / scale,
		Y: (-p.Y - b.A.Y) / scale,
	}
}
