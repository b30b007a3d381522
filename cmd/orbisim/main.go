package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/experiment"
	"github.com/san-kum/orbisim/internal/gui"
	"github.com/san-kum/orbisim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	// Run settings; they override the config file only when given.
	dt          float64
	steps       int
	sampleEvery int
	seed        int64
	integrator  string
	strategy    string
	count       int
	theta       float64
	maxIter     int
	tolerance   float64
	// Logging
	logJSON  bool
	logLevel string
	logFile  string
	// Output
	outFile   string
	svgFile   string
	width     int
	height    int
	frameRate int
	gifFile   string
	keepParts bool
	watch     bool
	record    string
	column    []string
	particle  int
	metric    string
)

var logger = slog.Default()

// main registers the commands and runs the root command. With no
// subcommand it opens the window on the preset menu.
func main() {
	rootCmd := &cobra.Command{
		Use:   "orbisim",
		Short: "point charges in two dimensions",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.RunInteractive(logger)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".orbisim", "data directory")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log to a file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run [arrangement]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	simFlags(runCmd)
	runCmd.Flags().BoolVar(&keepParts, "particles", false, "store particle snapshots")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw the particles on the terminal while running")
	runCmd.Flags().StringVar(&record, "record", "", "stream every sampled frame to this CSV file")

	renderCmd := &cobra.Command{
		Use:   "render [arrangement]",
		Short: "run, then write the potential field as PNG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderField,
	}
	simFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "field.png", "PNG output path")
	renderCmd.Flags().StringVar(&svgFile, "svg", "", "also write particles and predicted paths as SVG")
	renderCmd.Flags().IntVar(&width, "width", 0, "image width (default from config)")
	renderCmd.Flags().IntVar(&height, "height", 0, "image height (default from config)")

	pathsCmd := &cobra.Command{
		Use:   "paths [arrangement]",
		Short: "draw predicted particle paths on the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  drawPaths,
	}
	simFlags(pathsCmd)
	pathsCmd.Flags().StringVar(&svgFile, "svg", "", "write the Braille drawing as SVG")

	fieldCmd := &cobra.Command{
		Use:   "field [arrangement]",
		Short: "compare field strategies against the precise sum",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareStrategies,
	}
	simFlags(fieldCmd)
	fieldCmd.Flags().IntVar(&width, "width", 256, "raster width")
	fieldCmd.Flags().IntVar(&height, "height", 256, "raster height")

	liveCmd := &cobra.Command{
		Use:   "live [arrangement]",
		Short: "run with the terminal live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	simFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&gifFile, "gif", "orbisim.gif", "where R saves recordings")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset in the terminal and run it live",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(quietLogger(), frameRate)
		},
	}
	tuiCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	guiCmd := &cobra.Command{
		Use:   "gui [arrangement]",
		Short: "run in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, args)
			if err != nil {
				return err
			}
			return gui.Run(cfg, logger)
		},
	}
	simFlags(guiCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&column, "column", []string{"energy", "momentum_x", "iterations"}, "frame columns to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringSliceVar(&column, "column", []string{"kinetic"}, "frame column to analyze")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [arrangement]",
		Short: "phase portrait and Poincaré section of one particle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	simFlags(phaseCmd)
	phaseCmd.Flags().IntVar(&particle, "particle", 0, "particle index")
	phaseCmd.Flags().StringVar(&svgFile, "svg", "", "write the portrait as SVG")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [arrangement]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.MaximumNArgs(1),
		RunE:  lyapunov,
	}
	simFlags(lyapunovCmd)

	stepsCmd := &cobra.Command{
		Use:   "steps [arrangement]",
		Short: "solver effort and energy error across step sizes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  stepSweep,
	}
	simFlags(stepsCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [arrangement] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same universe",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	simFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [arrangement]",
		Short: "benchmark steps and field strategies",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bench,
	}
	simFlags(benchCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [arrangement]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [arrangement] [param] [min] [max] [n]",
		Short: "sweep one config parameter",
		Args:  cobra.ExactArgs(5),
		RunE:  runSweep,
	}
	simFlags(sweepCmd)

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [arrangement] [trials] [perturbation]",
		Short: "rerun with perturbed initial positions",
		Args:  cobra.ExactArgs(3),
		RunE:  runMonteCarlo,
	}
	simFlags(monteCarloCmd)

	tuneCmd := &cobra.Command{
		Use:   "tune [arrangement] [param=v1,v2,...]...",
		Short: "grid search config parameters for the lowest metric",
		Args:  cobra.MinimumNArgs(2),
		RunE:  tune,
	}
	simFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimize")

	rootCmd.AddCommand(runCmd, renderCmd, pathsCmd, fieldCmd, liveCmd, tuiCmd, guiCmd,
		listCmd, plotCmd, analyzeCmd, exportCmd, exportJSONCmd, exportCSVCmd,
		phaseCmd, lyapunovCmd, stepsCmd, compareCmd, benchCmd, presetsCmd,
		scenarioCmd, sweepCmd, monteCarloCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// simFlags adds the settings shared by every command that builds a
// simulation.
func simFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	f.IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record a frame every n steps")
	f.Int64Var(&seed, "seed", 0, "random seed")
	f.StringVar(&integrator, "integrator", "greenspan", "integrator (greenspan, leapfrog, euler)")
	f.StringVar(&strategy, "strategy", "bilinear", "field strategy (precise, bilinear, barneshut)")
	f.IntVar(&count, "count", config.DefaultCount, "particle count (random, cloud)")
	f.Float64Var(&theta, "theta", config.DefaultTheta, "Barnes-Hut opening threshold")
	f.IntVar(&maxIter, "max-iterations", 16, "solver iteration limit")
	f.Float64Var(&tolerance, "tolerance", 0, "solver early-exit residual")
}

// buildConfig layers defaults, then the preset, then the config file, then
// any flags that were set explicitly.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 && args[0] != "" {
		cfg.Arrangement = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Arrangement, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Arrangement))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 && args[0] != "" {
			loaded.Arrangement = args[0]
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("count") {
		cfg.Particles.Count = count
	}
	if flags.Changed("theta") {
		cfg.Field.Theta = theta
	}
	if flags.Changed("max-iterations") {
		cfg.Solver.MaxIterations = maxIter
	}
	if flags.Changed("tolerance") {
		cfg.Solver.Tolerance = tolerance
	}
	return cfg, cfg.Validate()
}

func newExperiment(cmd *cobra.Command, args []string) (*experiment.Experiment, error) {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg, logger)
}

func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(logLevel))); err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", logLevel, err)
	}

	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		cobra.OnFinalize(func() { f.Close() })
		w = f
	}

	opts := &slog.HandlerOptions{Level: level}
	if logJSON {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// quietLogger is the logger for full-screen terminal views, which own
// stderr: it drops records unless a log file was given.
func quietLogger() *slog.Logger {
	if logFile != "" {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

// signalContext is canceled on interrupt; runs stop between steps.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
