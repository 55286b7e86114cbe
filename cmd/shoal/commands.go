package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/shoal/internal/analysis"
	"github.com/san-kum/shoal/internal/config"
	"github.com/san-kum/shoal/internal/export"
	"github.com/san-kum/shoal/internal/flock"
	"github.com/san-kum/shoal/internal/metrics"
	"github.com/san-kum/shoal/internal/sim"
	"github.com/san-kum/shoal/internal/storage"
)

var benchCounts = []int{200, 500, 1000}

func flockMetrics(radius float64) []sim.Metric {
	return []sim.Metric{
		metrics.NewPolarization(),
		metrics.NewMeanSpeed(),
		metrics.NewNearestNeighbour(),
		metrics.NewNeighbourCount(radius),
	}
}

func newSimulator(cfg *config.Config) *sim.Simulator {
	s := sim.New(cfg.Params(), cfg.WorldBounds())
	for _, o := range cfg.ObstaclePoints() {
		s.AddObstacle(o)
	}
	return s
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Frames:        cfg.Frames,
		Count:         cfg.Count,
		Seed:          cfg.Seed,
		Workers:       cfg.Workers,
		ValidateState: true,
	}
}

func runInfo(cfg *config.Config) storage.RunInfo {
	p := cfg.Params()
	name := preset
	if name == "" {
		name = "custom"
	}
	return storage.RunInfo{
		Preset:    name,
		Seed:      cfg.Seed,
		Dt:        cfg.Dt,
		Frames:    cfg.Frames,
		Count:     cfg.Count,
		Workers:   cfg.Workers,
		Params:    p.GetParams(),
		Obstacles: len(cfg.Obstacles),
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Seed = cfg.ResolvedSeed()

	s := newSimulator(cfg)
	for _, m := range flockMetrics(radius) {
		s.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	result, err := s.Run(ctx, simConfig(cfg))
	if err != nil && result == nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "run stopped early: %v\n", err)
	}

	info := runInfo(cfg)
	if jsonOut {
		return storage.ExportJSONStdout(info, result)
	}

	fmt.Printf("frames: %d  count: %d  seed: %d  time: %v\n", result.FramesTaken, cfg.Count, cfg.Seed, elapsed.Round(time.Millisecond))
	printMetrics(result.Metrics)

	if noSave {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-18s %.4f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tCOUNT\tFRAMES\tPOLARIZATION\tTIMESTAMP")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.3f\t%s\n",
			r.ID, r.Preset, r.Count, r.FramesTaken, r.Metrics["polarization"], r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	for _, name := range meta.Series {
		data := series[name]
		if len(data) == 0 {
			continue
		}
		if len(data) > 400 {
			data = downsample(data, 400)
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name)))
		fmt.Println()
	}
	return nil
}

func downsample(data []float64, n int) []float64 {
	out := make([]float64, n)
	step := float64(len(data)) / float64(n)
	for i := range out {
		out[i] = data[int(float64(i)*step)]
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	if outFile != "" {
		times, values, err := st.Series(args[0], seriesName)
		if err != nil {
			return err
		}
		svg := export.SeriesToSVG(times, values, 800, 300, "#2b8cbe")
		if svg == "" {
			return fmt.Errorf("series %s has too few samples to plot", seriesName)
		}
		if err := os.WriteFile(outFile, []byte(svg), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
		return nil
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	times, series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Print("time")
	for _, name := range meta.Series {
		fmt.Printf(",%s", name)
	}
	fmt.Println()
	for i, t := range times {
		fmt.Printf("%.6f", t)
		for _, name := range meta.Series {
			fmt.Printf(",%.6f", series[name][i])
		}
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).WriteJSON(os.Stdout, args[0])
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	_, values, err := st.Series(args[0], seriesName)
	if err != nil {
		return err
	}

	summary, err := analysis.Summarize(values)
	if err != nil {
		return err
	}
	fmt.Printf("%s: n=%d min=%.4f max=%.4f mean=%.4f std=%.4f\n",
		seriesName, summary.N, summary.Min, summary.Max, summary.Mean, summary.Std)

	spectrum, err := analysis.PowerSpectrum(values)
	if err != nil {
		return err
	}
	if len(spectrum) > 1 {
		fmt.Println(asciigraph.Plot(spectrum[1:],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum")))
	}

	freq, power, err := analysis.DominantFrequency(values, meta.Dt)
	if err != nil {
		return err
	}
	if freq == 0 {
		fmt.Println("no dominant frequency")
		return nil
	}
	fmt.Printf("dominant frequency: %.4f Hz (power %.4g)\n", freq, power)
	fmt.Printf("period: %.3f s\n", 1/freq)
	return nil
}

func benchPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	frameBudget(cmd, cfg)
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	workerCounts := []int{1}
	if n := runtime.NumCPU(); n > 1 {
		workerCounts = append(workerCounts, n)
	}

	ctx, cancel := signalContext()
	defer cancel()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COUNT\tWORKERS\tFRAMES\tTIME\tFRAMES/SEC")
	for _, n := range benchCounts {
		for _, workers := range workerCounts {
			sc := simConfig(cfg)
			sc.Count = n
			sc.Workers = workers
			sc.ValidateState = false

			start := time.Now()
			if _, err := newSimulator(cfg).Run(ctx, sc); err != nil {
				return err
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.1f\n",
				n, workers, sc.Frames, elapsed.Round(time.Millisecond), float64(sc.Frames)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", numRuns)
	}
	cfg.Seed = cfg.ResolvedSeed()

	ctx, cancel := signalContext()
	defer cancel()

	ens := sim.NewEnsemble(newSimulator(cfg), numRuns, cfg.Seed, func() []sim.Metric {
		return flockMetrics(radius)
	})
	results, err := ens.Run(ctx, simConfig(cfg))
	if err != nil {
		return fmt.Errorf("ensemble failed: %w", err)
	}

	finals := make(map[string][]float64)
	for _, r := range results {
		for name, series := range r.Series {
			if len(series) > 0 {
				finals[name] = append(finals[name], series[len(series)-1])
			}
		}
	}
	names := make([]string, 0, len(finals))
	for name := range finals {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%d runs, seeds %d..%d, %d frames\n", numRuns, cfg.Seed, cfg.Seed+int64(numRuns)-1, cfg.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX")
	for _, name := range names {
		s, err := analysis.Summarize(finals[name])
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", name, s.Mean, s.Std, s.Min, s.Max)
	}
	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Seed = cfg.ResolvedSeed()

	ctx, cancel := signalContext()
	defer cancel()

	var last *flock.Flock
	err = newSimulator(cfg).RunWithCallback(ctx, simConfig(cfg), func(frame int, f *flock.Flock, t float64) bool {
		last = f
		return true
	})
	if err != nil {
		return err
	}

	svg := export.FlockToSVG(last, int(cfg.Bounds.Width), int(cfg.Bounds.Height))
	if err := os.WriteFile(outFile, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d fish, seed %d)\n", outFile, last.Len(), cfg.Seed)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tCOUNT\tOBSTACLES\tALIGN\tCOHESION\tSEPARATION")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		p := cfg.Params()
		fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.2f\t%.2f\n",
			name, cfg.Count, len(cfg.Obstacles), p.AlignFactor, p.CohesionFactor, p.SeparationFactor)
	}
	return w.Flush()
}
