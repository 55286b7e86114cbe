package optim

import (
	"context"
	"fmt"
	"maps"
	"math"

	"github.com/san-kum/shoal/internal/dynamo"
	"github.com/san-kum/shoal/internal/flock"
)

// Point is one evaluated parameter combination.
type Point struct {
	Params map[string]float64
	Score  float64
}

// Evaluator scores a set of flock parameter overrides.
type Evaluator func(ctx context.Context, params map[string]float64) (float64, error)

// GridSearch evaluates every combination of the given tunable parameter values.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch checks that every name is a tunable parameter and every
// value lies in its documented range.
func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d value lists", len(params), len(ranges))
	}
	for i, name := range params {
		r, ok := flock.ParamRange(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", dynamo.ErrUnknownParameter, name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("%w: no values for %s", dynamo.ErrParameterBounds, name)
		}
		for _, v := range ranges[i] {
			if !r.Contains(v) {
				return nil, fmt.Errorf("%w: %s=%g not in [%g, %g]", dynamo.ErrParameterBounds, name, v, r.Min, r.Max)
			}
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Size is the number of combinations Search will evaluate.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search evaluates the whole grid in order and returns the best point along
// with every evaluated point. A failed evaluation aborts the search.
func (g *GridSearch) Search(ctx context.Context, evaluate Evaluator, maximize bool) (Point, []Point, error) {
	best := Point{Score: math.Inf(1)}
	if maximize {
		best.Score = math.Inf(-1)
	}
	all := make([]Point, 0, g.Size())

	err := g.searchRecursive(ctx, 0, make(map[string]float64), evaluate, func(p Point) {
		all = append(all, p)
		if (maximize && p.Score > best.Score) || (!maximize && p.Score < best.Score) {
			best = p
		}
	})
	if err != nil {
		return Point{}, all, err
	}
	return best, all, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	evaluate Evaluator,
	record func(Point),
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, err)
		}
		score, err := evaluate(ctx, current)
		if err != nil {
			return err
		}
		record(Point{Params: maps.Clone(current), Score: score})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, next, evaluate, record); err != nil {
			return err
		}
	}
	return nil
}
