package flock

import (
	"testing"

	"github.com/san-kum/shoal/internal/dynamo"
)

func TestFlock_SpawnClearsAccumulators(t *testing.T) {
	f := New(dynamo.DefaultBounds)
	idx := f.Spawn(Agent{Accum: Accumulators{SepCount: 3}})
	if idx != 0 || f.Len() != 1 {
		t.Fatalf("spawn returned %d, len %d", idx, f.Len())
	}
	if !f.Agent(0).Accum.IsZero() {
		t.Error("spawned agent carries accumulators")
	}
}

func TestFlock_Truncate(t *testing.T) {
	f := New(dynamo.DefaultBounds)
	for i := 0; i < 5; i++ {
		f.Spawn(Agent{Position: dynamo.Vec2{X: float64(i)}})
	}

	if got := f.Truncate(10); got != 0 {
		t.Errorf("truncate above len removed %d", got)
	}
	if got := f.Truncate(2); got != 3 || f.Len() != 2 {
		t.Errorf("truncate removed %d, len %d", got, f.Len())
	}
	if f.Agent(1).Position.X != 1 {
		t.Error("truncate reordered survivors")
	}
	if got := f.Truncate(-1); got != 2 || f.Len() != 0 {
		t.Errorf("negative truncate removed %d", got)
	}
}

func TestFlock_PlaceObstacle(t *testing.T) {
	f := New(dynamo.DefaultBounds)

	if !f.PlaceObstacle(dynamo.Vec2{X: 100, Y: -20}) {
		t.Error("obstacle inside bounds rejected")
	}
	if f.PlaceObstacle(dynamo.Vec2{X: 500, Y: 0}) {
		t.Error("obstacle on the edge accepted")
	}
	if f.PlaceObstacle(dynamo.Vec2{X: 0, Y: 900}) {
		t.Error("obstacle outside bounds accepted")
	}
	if len(f.Obstacles()) != 1 {
		t.Fatalf("expected 1 obstacle, got %d", len(f.Obstacles()))
	}

	f.ClearObstacles()
	if len(f.Obstacles()) != 0 {
		t.Error("ClearObstacles left obstacles")
	}
}

func TestPointerToWorld(t *testing.T) {
	b := dynamo.CenteredBounds(1920, 1080)

	tests := []struct {
		cursor dynamo.Vec2
		want   dynamo.Vec2
	}{
		{dynamo.Vec2{X: 0, Y: 0}, dynamo.Vec2{X: -960, Y: 540}},
		{dynamo.Vec2{X: 960, Y: 540}, dynamo.Vec2{X: 0, Y: 0}},
		{dynamo.Vec2{X: 1920, Y: 1080}, dynamo.Vec2{X: 960, Y: -540}},
	}
	for _, tt := range tests {
		got := PointerToWorld(b, tt.cursor, 1)
		if got != tt.want {
			t.Errorf("PointerToWorld(%v) = %v, want %v", tt.cursor, got, tt.want)
		}
		if back := WorldToPointer(b, got, 1); back != tt.cursor {
			t.Errorf("WorldToPointer(%v) = %v, want %v", got, back, tt.cursor)
		}
	}

	scaled := PointerToWorld(dynamo.CenteredBounds(400, 200), dynamo.Vec2{X: 50, Y: 25}, 4)
	if scaled != (dynamo.Vec2{X: 0, Y: 0}) {
		t.Errorf("scaled mapping = %v, want origin", scaled)
	}
}
