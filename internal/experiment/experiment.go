// Package experiment assembles a ready-to-run simulator from a config.
package experiment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/orbisim/internal/clut"
	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/integrators"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/view"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

// New validates cfg and builds the universe, integrator, field evaluator
// settings, viewport and color table it describes.
func New(cfg *config.Config, logger *slog.Logger) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	reg := NewRegistry()
	u, err := reg.BuildUniverse(cfg)
	if err != nil {
		return nil, err
	}
	stepper, err := reg.GetIntegrator(cfg)
	if err != nil {
		return nil, err
	}
	if g, ok := stepper.(*integrators.Greenspan); ok {
		g.Logger = logger
	}
	strategy, err := reg.GetStrategy(cfg)
	if err != nil {
		return nil, err
	}
	table, err := clut.New()
	if err != nil {
		return nil, fmt.Errorf("build color table: %w", err)
	}

	s := sim.New(u, stepper, cfg.Dt)
	s.SetLogger(logger)
	s.SetStrategy(strategy)
	s.SetFieldOptions(FieldOptions(cfg))
	s.SetMapper(table)
	s.SetViewport(Viewport(cfg))
	for _, m := range reg.DefaultMetrics() {
		s.AddMetric(m)
	}

	logger.Debug("experiment ready",
		"arrangement", cfg.Arrangement,
		"particles", u.Len(),
		"integrator", stepper.Name(),
		"strategy", strategy)
	return &Experiment{cfg: cfg, simulator: s}, nil
}

// Viewport returns the configured view. With View.Center the universe
// origin sits in the middle of the window.
func Viewport(cfg *config.Config) view.Viewport {
	vp := view.Default()
	w, h := float64(cfg.View.Width), float64(cfg.View.Height)
	vp.SetZoom(cfg.View.Zoom, w/2, h/2)
	if cfg.View.Center {
		vp.Recenter(w/2, h/2)
	}
	return vp
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, sim.Config{
		Dt:            e.cfg.Dt,
		Steps:         e.cfg.Steps,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
	})
}

// RunWithParticles is Run with a particle snapshot at every sample.
func (e *Experiment) RunWithParticles(ctx context.Context) (*sim.Result, error) {
	return e.simulator.Run(ctx, sim.Config{
		Dt:            e.cfg.Dt,
		Steps:         e.cfg.Steps,
		SampleEvery:   e.cfg.SampleEvery,
		ValidateState: true,
		KeepParticles: true,
	})
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
