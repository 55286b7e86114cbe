package flock

import "github.com/san-kum/shoal/internal/dynamo"

// accumulatePair adds the contributions of the unordered pair (i, j) to ai
// and aj. Coincident agents contribute nothing.
func accumulatePair(pi, pj, vi, vj dynamo.Vec2, ai, aj *Accumulators, p *Params) {
	d := pi.Dist(pj)
	if d == 0 {
		return
	}

	if d < p.SeparationRadius {
		s := pi.Sub(pj).Div(d)
		ai.Sep = ai.Sep.Add(s)
		ai.SepCount++
		aj.Sep = aj.Sep.Sub(s)
		aj.SepCount++
	}

	if d < p.AlignRadius {
		ai.Align = ai.Align.Add(vj)
		ai.AlignCount++
		aj.Align = aj.Align.Add(vi)
		aj.AlignCount++
	}

	if d < p.CohesionRadius {
		ai.Cohesion = ai.Cohesion.Add(pj)
		ai.CohesionCount++
		aj.Cohesion = aj.Cohesion.Add(pi)
		aj.CohesionCount++
	}
}

// Accumulate scans every unordered pair of agents once and adds separation,
// alignment and cohesion contributions into both agents' accumulators.
func Accumulate(agents []Agent, p Params) {
	n := len(agents)
	for i := 0; i < n; i++ {
		ai := &agents[i]
		for j := i + 1; j < n; j++ {
			aj := &agents[j]
			accumulatePair(ai.Position, aj.Position, ai.Velocity, aj.Velocity, &ai.Accum, &aj.Accum, &p)
		}
	}
}

// accumulateRow adds the pairs (i, j) for every j > i into local.
func accumulateRow(agents []Agent, i int, local []Accumulators, p *Params) {
	ai := &agents[i]
	for j := i + 1; j < len(agents); j++ {
		aj := &agents[j]
		accumulatePair(ai.Position, aj.Position, ai.Velocity, aj.Velocity, &local[i], &local[j], p)
	}
}

// AccumulateParallel is Accumulate with rows partitioned across workers.
// Each worker writes only its own scratch slice; the slices are merged into
// the agents afterwards. scratch is grown as needed and returned for reuse.
//
// Rows are folded (k pairs with n-1-k) so every chunk sees roughly the same
// number of pairs.
func AccumulateParallel(agents []Agent, p Params, workers int, scratch [][]Accumulators) [][]Accumulators {
	n := len(agents)
	if workers <= 1 || n < 2 {
		Accumulate(agents, p)
		return scratch
	}

	for len(scratch) < workers {
		scratch = append(scratch, nil)
	}
	for w := 0; w < workers; w++ {
		if cap(scratch[w]) < n {
			scratch[w] = make([]Accumulators, n)
		}
		scratch[w] = scratch[w][:n]
	}

	half := (n + 1) / 2
	chunks := dynamo.ParallelFor(half, workers, 1, func(c, start, end int) {
		local := scratch[c]
		for k := start; k < end; k++ {
			accumulateRow(agents, k, local, &p)
			if mirror := n - 1 - k; mirror != k {
				accumulateRow(agents, mirror, local, &p)
			}
		}
	})

	dynamo.ParallelFor(n, workers, 64, func(_, start, end int) {
		for i := start; i < end; i++ {
			for c := 0; c < chunks; c++ {
				agents[i].Accum.Merge(scratch[c][i])
				scratch[c][i].Reset()
			}
		}
	})

	return scratch
}
