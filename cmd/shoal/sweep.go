package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/shoal/internal/automation"
	"github.com/san-kum/shoal/internal/optim"
	"github.com/san-kum/shoal/internal/sim"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.Run(ctx, sc, cfg.Params(), func() []sim.Metric {
		return flockMetrics(radius)
	})
	if err != nil {
		return err
	}

	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tCOUNT\tOBSTACLES\tTIME\tPOLARIZATION\tMEAN_SPEED\tNEAREST")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f\t%.3f\t%.3f\t%.2f\n",
			r.Label, r.Frames, r.Count, r.Obstacles, r.Time,
			r.Metrics["polarization"], r.Metrics["mean_speed"], r.Metrics["nearest_neighbour"])
	}
	return w.Flush()
}

// parseGrid turns "name=v1,v2" flags into parallel name and value lists.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	values := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || name == "" {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2", spec)
		}
		var vals []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid value in --param %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, strings.TrimSpace(name))
		values = append(values, vals)
	}
	return names, values, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	frameBudget(cmd, cfg)
	cfg.Seed = cfg.ResolvedSeed()

	names, values, err := parseGrid(sweepParams)
	if err != nil {
		return err
	}
	grid, err := optim.NewGridSearch(names, values)
	if err != nil {
		return err
	}

	evaluate := func(ctx context.Context, overrides map[string]float64) (float64, error) {
		p := cfg.Params()
		for name, v := range overrides {
			if err := p.SetParam(name, v); err != nil {
				return 0, err
			}
		}
		s := sim.New(p, cfg.WorldBounds())
		for _, o := range cfg.ObstaclePoints() {
			s.AddObstacle(o)
		}
		for _, m := range flockMetrics(radius) {
			s.AddMetric(m)
		}
		result, err := s.Run(ctx, simConfig(cfg))
		if err != nil {
			return 0, err
		}
		score, ok := result.Metrics[metricName]
		if !ok {
			return 0, fmt.Errorf("unknown metric: %s", metricName)
		}
		return score, nil
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("sweeping %d combinations, %d frames each, seed %d\n", grid.Size(), cfg.Frames, cfg.Seed)
	best, all, err := grid.Search(ctx, evaluate, !minimize)
	if err != nil {
		return err
	}

	sort.SliceStable(all, func(i, j int) bool {
		if minimize {
			return all[i].Score < all[j].Score
		}
		return all[i].Score > all[j].Score
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, pt := range all {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", pt.Params[name])
		}
		fmt.Fprintf(w, "%.4f\n", pt.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("best %s = %.4f at", metricName, best.Score)
	for _, name := range names {
		fmt.Printf(" %s=%g", name, best.Params[name])
	}
	fmt.Println()
	return nil
}
