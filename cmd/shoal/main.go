package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/shoal/internal/config"
	"github.com/san-kum/shoal/internal/gui"
	"github.com/san-kum/shoal/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	seed       int64
	count      int
	workers    int
	dt         float64
	frames     int

	// radius for the neighbour_count metric
	radius float64

	noSave  bool
	jsonOut bool
	numRuns int

	seriesName string
	outFile    string

	sweepParams []string
	metricName  string
	minimize    bool

	menu bool
)

// frame budgets for commands that repeat runs
const (
	benchFrames = 120
	sweepFrames = 300
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shoal",
		Short: "flocking simulation lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".shoal", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&count, "count", config.DefaultCount, "desired number of fish")
	pf.IntVar(&workers, "workers", 1, "pipeline workers (0 = one per cpu)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record metric series",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed frame delta (seconds)")
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().Float64Var(&radius, "radius", 50, "neighbour_count radius")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the run as JSON")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata, or a series as SVG with --out",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&seriesName, "series", "polarization", "series to draw")
	exportCmd.Flags().StringVar(&outFile, "out", "", "write an SVG plot of the series here")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run series to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&seriesName, "series", "polarization", "series to analyze")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the frame pipeline",
		Args:  cobra.NoArgs,
		RunE:  benchPipeline,
	}
	benchCmd.Flags().IntVar(&frames, "frames", benchFrames, "frames per measurement")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run several seeds concurrently and summarize",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of seeds")
	ensembleCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed frame delta (seconds)")
	ensembleCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	ensembleCmd.Flags().Float64Var(&radius, "radius", 50, "neighbour_count radius")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "simulate headlessly and write the final flock as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	snapshotCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed frame delta (seconds)")
	snapshotCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	snapshotCmd.Flags().StringVar(&outFile, "out", "flock.svg", "output file")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted multi-step scenario on one flock",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().Float64Var(&radius, "radius", 50, "neighbour_count radius")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search flock parameters against a metric",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter grid, e.g. align_factor=0,0.5,1 (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "polarization", "metric to optimize (run mean)")
	sweepCmd.Flags().BoolVar(&minimize, "minimize", false, "minimize the metric instead of maximizing")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "fixed frame delta (seconds)")
	sweepCmd.Flags().IntVar(&frames, "frames", sweepFrames, "frames per evaluation")
	sweepCmd.Flags().Float64Var(&radius, "radius", 50, "neighbour_count radius")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the flock in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&menu, "menu", false, "pick a preset from a menu first")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run the flock in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, analyzeCmd,
		benchCmd, ensembleCmd, snapshotCmd, scenarioCmd, sweepCmd, presetsCmd, liveCmd, guiCmd)

	return rootCmd
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order, then validates the result. The config file only overrides
// the fields it names.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// frameBudget replaces the configured frame count with the default of the
// command's own --frames flag unless that flag was given.
func frameBudget(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags().Lookup("frames")
	if f == nil || f.Changed {
		return
	}
	if n, err := strconv.Atoi(f.DefValue); err == nil {
		cfg.Frames = n
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	if menu {
		return viz.RunInteractive()
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg)
}
