package metrics

import (
	"math"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

// running is the shared per-run mean used by every flock metric.
type running struct {
	total   float64
	samples int
}

func (r *running) add(v float64) float64 {
	r.total += v
	r.samples++
	return v
}

func (r *running) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.total / float64(r.samples)
}

func (r *running) Reset() {
	r.total = 0
	r.samples = 0
}

// Polarization is the length of the mean unit heading: 1 when every agent
// swims the same way, near 0 for a disordered flock.
type Polarization struct{ running }

func NewPolarization() *Polarization { return &Polarization{} }

func (p *Polarization) Name() string { return "polarization" }

func (p *Polarization) Observe(f *flock.Flock, t float64) float64 {
	agents := f.Agents()
	if len(agents) == 0 {
		return p.add(0)
	}
	var sum dynamo.Vec2
	for _, a := range agents {
		sum = sum.Add(a.Velocity.Normalize())
	}
	return p.add(sum.Len() / float64(len(agents)))
}

type MeanSpeed struct{ running }

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(f *flock.Flock, t float64) float64 {
	agents := f.Agents()
	if len(agents) == 0 {
		return m.add(0)
	}
	sum := 0.0
	for _, a := range agents {
		sum += a.Velocity.Len()
	}
	return m.add(sum / float64(len(agents)))
}

// NearestNeighbour averages, over all agents, the distance to the closest
// other agent. Distances are straight-line and ignore the wrap.
type NearestNeighbour struct{ running }

func NewNearestNeighbour() *NearestNeighbour { return &NearestNeighbour{} }

func (n *NearestNeighbour) Name() string { return "nearest_neighbour" }

func (n *NearestNeighbour) Observe(f *flock.Flock, t float64) float64 {
	agents := f.Agents()
	if len(agents) < 2 {
		return n.add(0)
	}
	nearest := make([]float64, len(agents))
	for i := range nearest {
		nearest[i] = math.Inf(1)
	}
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			d := agents[i].Position.Dist(agents[j].Position)
			nearest[i] = math.Min(nearest[i], d)
			nearest[j] = math.Min(nearest[j], d)
		}
	}
	sum := 0.0
	for _, d := range nearest {
		sum += d
	}
	return n.add(sum / float64(len(agents)))
}

// NeighbourCount is the mean number of other agents strictly within Radius.
type NeighbourCount struct {
	running
	Radius float64
}

func NewNeighbourCount(radius float64) *NeighbourCount {
	return &NeighbourCount{Radius: radius}
}

func (n *NeighbourCount) Name() string { return "neighbour_count" }

func (n *NeighbourCount) Observe(f *flock.Flock, t float64) float64 {
	agents := f.Agents()
	if len(agents) == 0 {
		return n.add(0)
	}
	pairs := 0
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			if agents[i].Position.Dist(agents[j].Position) < n.Radius {
				pairs++
			}
		}
	}
	return n.add(2 * float64(pairs) / float64(len(agents)))
}
