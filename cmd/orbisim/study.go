package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbisim/internal/analysis"
	"github.com/san-kum/orbisim/internal/automation"
	"github.com/san-kum/orbisim/internal/experiment"
	"github.com/san-kum/orbisim/internal/export"
	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/metrics"
	"github.com/san-kum/orbisim/internal/optim"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/storage"
)

func phasePlot(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	s := exp.GetSimulator()

	portrait := analysis.GeneratePhasePortrait(s.Universe(), s.Stepper(), particle, cfg.Dt, cfg.Steps)
	if portrait == nil {
		return fmt.Errorf("no particle %d (have %d)", particle, s.Universe().Len())
	}

	fmt.Printf("phase portrait: particle %d of %s, %d steps\n", particle, cfg.Arrangement, cfg.Steps)
	fmt.Println("x →, vx ↑")
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 24))

	section := analysis.GeneratePoincareSection(s.Universe(), s.Stepper(), particle, s.Universe().Sy[particle], cfg.Dt, cfg.Steps)
	fmt.Printf("\npoincaré section at y=%.3f: %d crossings\n", s.Universe().Sy[particle], len(section.Points))
	if len(section.Points) > 0 {
		fmt.Println(analysis.PoincareSectionToASCII(section, 70, 16))
	}

	if svgFile != "" {
		if err := export.SaveSVG(svgFile, export.TrajectoryToSVG(portrait.Points, 600, 600, "#ff8a5a")); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}

func lyapunov(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	s := exp.GetSimulator()

	fmt.Printf("lyapunov estimate for %s (%d particles, dt=%g, %d steps)\n\n", cfg.Arrangement, s.Universe().Len(), cfg.Dt, cfg.Steps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PERTURBATION\tLAMBDA")
	for _, eps := range []float64{1e-9, 1e-8, 1e-7} {
		lambda := analysis.LyapunovExponent(s.Universe(), s.Stepper(), cfg.Dt, cfg.Steps, eps)
		fmt.Fprintf(w, "%.0e\t%.4f\n", eps, lambda)
	}
	return w.Flush()
}

func stepSweep(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	s := exp.GetSimulator()
	duration := float64(cfg.Steps) * cfg.Dt

	dts := []float64{cfg.Dt / 4, cfg.Dt / 2, cfg.Dt, cfg.Dt * 2, cfg.Dt * 4, cfg.Dt * 8}
	points := analysis.StepSweep(s.Universe(), s.Stepper(), dts, duration)

	fmt.Printf("%s with %s over t=%g\n\n", cfg.Arrangement, s.Stepper().Name(), duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tMEAN ITER\tMAX RESIDUAL\tANOMALIES\tENERGY DRIFT")
	for _, p := range points {
		fmt.Fprintf(w, "%g\t%.2f\t%.2e\t%d\t%.2e\n", p.Dt, p.MeanIterations, p.MaxResidual, p.Anomalies, p.EnergyDrift)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	names := args[1:]

	reg := experiment.NewRegistry()
	u, err := reg.BuildUniverse(cfg)
	if err != nil {
		return err
	}

	steppers := make([]sim.Stepper, 0, len(names))
	for _, name := range names {
		c := *cfg
		c.Integrator = name
		st, err := reg.GetIntegrator(&c)
		if err != nil {
			return err
		}
		steppers = append(steppers, st)
	}

	fmt.Printf("comparing integrators for %s (%d particles, dt=%.4f, %d steps)\n\n", cfg.Arrangement, u.Len(), cfg.Dt, cfg.Steps)

	ctx, cancel := signalContext()
	defer cancel()
	start := time.Now()
	results, err := sim.NewEnsemble(u, cfg.Dt, metrics.Standard, steppers...).Run(ctx, sim.Config{
		Steps:         cfg.Steps,
		SampleEvery:   cfg.SampleEvery,
		ValidateState: true,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-9s\n", "integrator", "energy_drift", "momentum", "charge", "anomalies")
	fmt.Println(strings.Repeat("-", 66))
	for i, r := range results {
		fmt.Printf("%-12s  %12.2e  %12.2e  %12.2e  %9d\n", names[i], r.EnergyDrift,
			r.Metrics["momentum_drift"], r.Metrics["charge_drift"], r.Anomalies)
	}
	fmt.Printf("\nwall time %v (concurrent)\n", elapsed)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s\n\n", cfg.Arrangement)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tPARTICLES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, name := range []string{"greenspan", "leapfrog", "euler"} {
		c := *cfg
		c.Integrator = name
		c.Steps = 200
		exp, err := experiment.New(&c, logger)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
			name, exp.GetSimulator().Universe().Len(), result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}
	s := exp.GetSimulator()
	r := field.NewRaster(cfg.View.Width, cfg.View.Height)

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tRASTER\tTIME")
	for _, st := range field.Strategies() {
		start := time.Now()
		if err := s.RasterizeField(r, st); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%v\n", st, r.W, r.H, time.Since(start))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %s\n", sc.Name, sc.Description)
	results, err := automation.RunScenario(ctx, sc, st, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSTEPS\tANOMALIES\tENERGY DRIFT")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2e\n", i+1, r.StepsTaken, r.Anomalies, r.EnergyDrift)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	lo, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}
	n, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("n: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: args[1],
		ParamMin:  lo,
		ParamMax:  hi,
		NumSteps:  n,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\tANOMALIES\tENERGY DRIFT\tE MIN\tE MAX\tTIME\n", strings.ToUpper(args[1]))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%.2e\t%.6f\t%.6f\t%v\n",
			r.ParamValue, r.StepsTaken, r.Anomalies, r.EnergyDrift, r.MinEnergy, r.MaxEnergy, r.Elapsed.Round(time.Millisecond))
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[:1])
	if err != nil {
		return err
	}
	trials, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("trials: %w", err)
	}
	eps, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("perturbation: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: eps,
		NumTrials:    trials,
		Seed:         cfg.Seed,
	}, logger)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := 0.0
	for _, r := range results {
		if r.EnergyDrift > worst {
			worst = r.EnergyDrift
		}
	}
	fmt.Printf("%d trials: %d stable, %d unstable, worst energy drift %.2e\n", len(results), stable, unstable, worst)
	return nil
}

// tune parses name=v1,v2 arguments into a parameter grid and reports every
// point with the best one last.
func tune(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	var names []string
	var ranges [][]float64
	for _, arg := range args[1:] {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || list == "" {
			return fmt.Errorf("expected name=v1,v2,..., got %q", arg)
		}
		var values []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			values = append(values, v)
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch(names, ranges)
	g.Logger = logger
	best, value, points, err := g.Search(ctx, cfg, metric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metric))
	for _, p := range points {
		row := make([]string, len(names))
		for i, n := range names {
			row[i] = strconv.FormatFloat(p.Params[n], 'g', -1, 64)
		}
		if p.Err != nil {
			fmt.Fprintf(w, "%s\t%v\n", strings.Join(row, "\t"), p.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.4e\n", strings.Join(row, "\t"), p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best == nil {
		return fmt.Errorf("no grid point produced %s", metric)
	}
	fmt.Printf("\nbest %s = %.4e at %v\n", metric, value, best)
	return nil
}
