package main

import (
	"fmt"
	"image"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/orbisim/internal/experiment"
	"github.com/san-kum/orbisim/internal/export"
	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/storage"
	"github.com/san-kum/orbisim/internal/tui"
	"github.com/san-kum/orbisim/internal/view"
	"github.com/san-kum/orbisim/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	s := exp.GetSimulator()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if record != "" {
		rec, err := storage.NewRecorder(record, cfg.SampleEvery)
		if err != nil {
			return err
		}
		defer rec.Close()
		s.AddObserver(rec)
	}
	if watch {
		live := tui.NewLiveRenderer(os.Stdout, cfg.Arrangement, 15, tui.Viewport(s.Universe()))
		live.Start()
		defer live.Stop()
		s.AddObserver(live)
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("running", "arrangement", cfg.Arrangement, "particles", s.Universe().Len(), "steps", cfg.Steps)
	start := time.Now()

	run := exp.Run
	if keepParts {
		run = exp.RunWithParticles
	}
	result, err := run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		logger.Warn("run interrupted", "steps", result.StepsTaken, "error", err)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("anomalies: %d\n", result.Anomalies)
	fmt.Printf("energy drift: %.3e\n", result.EnergyDrift)
	for _, e := range result.Errors {
		fmt.Printf("error: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

// renderField runs the configured steps, then draws one frame of the
// potential without advancing.
func renderField(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	if width <= 0 {
		width = cfg.View.Width
	}
	if height <= 0 {
		height = cfg.View.Height
	}

	ctx, cancel := signalContext()
	defer cancel()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	s := exp.GetSimulator()
	s.SetRunning(false)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	start := time.Now()
	if _, err := s.Frame(img); err != nil {
		return err
	}
	logger.Info("rendered", "strategy", s.Strategy(), "size", fmt.Sprintf("%dx%d", width, height), "elapsed", time.Since(start))

	if err := export.SavePNG(outFile, img); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)

	if svgFile != "" {
		paths := s.FuturePaths(sim.DefaultPathSamples, sim.DefaultPathStride)
		svg := export.PathsToSVG(s.Universe(), paths, *s.Viewport(), width, height)
		if err := export.SaveSVG(svgFile, svg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}

// drawPaths prints the predicted paths as Braille dots, framed to fit.
func drawPaths(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	s := exp.GetSimulator()
	u := s.Universe()
	paths := s.FuturePaths(sim.DefaultPathSamples, sim.DefaultPathStride)

	x0, y0 := math.Inf(1), math.Inf(1)
	x1, y1 := math.Inf(-1), math.Inf(-1)
	extend := func(x, y float64) {
		x0, x1 = math.Min(x0, x), math.Max(x1, x)
		y0, y1 = math.Min(y0, y), math.Max(y1, y)
	}
	for k, path := range paths {
		extend(u.Sx[k], u.Sy[k])
		for _, p := range path {
			extend(p.X, p.Y)
		}
	}
	if u.Len() == 0 {
		x0, y0, x1, y1 = 0, 0, 1, 1
	}
	margin := math.Max(0.1, 0.05*math.Max(x1-x0, y1-y0))

	canvas := viz.NewCanvas(72, 24)
	w, h := canvas.Dots()
	vp := view.Fit(w, h, x0-margin, y0-margin, x1+margin, y1+margin)

	for k, path := range paths {
		fx, fy := vp.ToPixel(u.Sx[k], u.Sy[k])
		px, py := int(fx), int(fy)
		canvas.Dot(px-1, py-1)
		for _, p := range path {
			fx, fy := vp.ToPixel(p.X, p.Y)
			canvas.DrawLine(px, py, int(fx), int(fy))
			px, py = int(fx), int(fy)
		}
	}

	fmt.Printf("%s: %d particles, %d×%d steps ahead\n\n", exp.Config().Arrangement, u.Len(), sim.DefaultPathSamples, sim.DefaultPathStride)
	fmt.Println(canvas.String())

	if svgFile != "" {
		if err := export.SaveSVG(svgFile, export.CanvasToSVG(canvas, 4, "#9fd7ff")); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgFile)
	}
	return nil
}

// compareStrategies rasterizes the same universe with every strategy and
// measures each against the precise sum.
func compareStrategies(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd, args)
	if err != nil {
		return err
	}
	s := exp.GetSimulator()
	// cover the configured view at the raster's resolution
	vp := s.Viewport()
	vp.Scale *= float64(exp.Config().View.Width) / float64(width)

	rasters := make(map[field.Strategy]*field.Raster)
	times := make(map[field.Strategy]time.Duration)
	for _, st := range field.Strategies() {
		r := field.NewRaster(width, height)
		start := time.Now()
		if err := s.RasterizeField(r, st); err != nil {
			return err
		}
		times[st] = time.Since(start)
		rasters[st] = r
	}

	ref := rasters[field.Precise]
	fmt.Printf("%s: %d particles, %dx%d raster\n\n", exp.Config().Arrangement, s.Universe().Len(), width, height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tTIME\tMEAN REL\tMAX ABS\tRMS")
	for _, st := range field.Strategies() {
		stats, err := field.Compare(rasters[st], ref)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%v\t%.2e\t%.2e\t%.2e\n", st, times[st], stats.MeanRelative, stats.MaxAbs, stats.RMS)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, quietLogger())
	if err != nil {
		return err
	}
	if gifFile != "" {
		if err := os.MkdirAll(filepath.Dir(gifFile), 0755); err != nil {
			return err
		}
	}

	m := viz.NewModel(exp.GetSimulator(), cfg.Arrangement, frameRate, cfg.Seed)
	m.SetGIFPath(gifFile)
	return viz.RunModel(m)
}
