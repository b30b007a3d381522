package sim

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/san-kum/orbisim/internal/dynamo"
	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

// DefaultDt is the time step of one animation frame.
const DefaultDt = 0.005

// Simulator owns the particle store and drives the per-frame sequence:
// advance, rasterize the potential, map samples to pixels.
type Simulator struct {
	u          *universe.Universe
	stepper    Stepper
	dt         float64
	evaluators map[field.Strategy]field.Evaluator
	strategy   field.Strategy
	fieldOpts  field.Options
	viewport   view.Viewport
	mapper     field.Mapper
	raster     *field.Raster
	running    bool
	t          float64
	step       int
	metrics    []Metric
	observers  []Observer
	logger     *slog.Logger
	pool       *UniversePool
}

func New(u *universe.Universe, stepper Stepper, dt float64) *Simulator {
	if dt <= 0 {
		dt = DefaultDt
	}
	return &Simulator{
		u:          u,
		stepper:    stepper,
		dt:         dt,
		evaluators: make(map[field.Strategy]field.Evaluator),
		strategy:   field.Bilinear,
		viewport:   view.Default(),
		raster:     field.NewRaster(0, 0),
		running:    true,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     slog.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) SetLogger(l *slog.Logger)      { s.logger = l }
func (s *Simulator) SetMapper(m field.Mapper)      { s.mapper = m }
func (s *Simulator) SetViewport(v view.Viewport)   { s.viewport = v }
func (s *Simulator) Viewport() *view.Viewport      { return &s.viewport }
func (s *Simulator) Universe() *universe.Universe  { return s.u }
func (s *Simulator) Stepper() Stepper              { return s.stepper }
func (s *Simulator) Dt() float64                   { return s.dt }
func (s *Simulator) Time() float64                 { return s.t }
func (s *Simulator) Steps() int                    { return s.step }
func (s *Simulator) Strategy() field.Strategy      { return s.strategy }
func (s *Simulator) SetStrategy(st field.Strategy) { s.strategy = st }
func (s *Simulator) Running() bool                 { return s.running }
func (s *Simulator) SetRunning(r bool)             { s.running = r }
func (s *Simulator) Toggle()                       { s.running = !s.running }
func (s *Simulator) Raster() *field.Raster         { return s.raster }

func (s *Simulator) SetFieldOptions(o field.Options) {
	s.fieldOpts = o
	clear(s.evaluators)
}

func (s *Simulator) evaluator(st field.Strategy) (field.Evaluator, error) {
	if ev, ok := s.evaluators[st]; ok {
		return ev, nil
	}
	ev, err := field.New(st, s.fieldOpts)
	if err != nil {
		return nil, err
	}
	s.evaluators[st] = ev
	return ev, nil
}

// AdvanceOneStep integrates the store forward by one time step.
func (s *Simulator) AdvanceOneStep() StepReport {
	report := s.stepper.Advance(s.u, s.dt)
	s.t += s.dt
	s.step++

	for _, m := range s.metrics {
		m.Observe(s.u, s.t)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.u, s.t, report)
	}
	return report
}

// EvaluatePotential returns the potential at universe point (x, y) using the
// current strategy.
func (s *Simulator) EvaluatePotential(x, y float64) (float64, error) {
	ev, err := s.evaluator(s.strategy)
	if err != nil {
		return 0, err
	}
	return ev.Potential(s.u, x, y), nil
}

// RasterizeField fills r with the potential over the current viewport.
func (s *Simulator) RasterizeField(r *field.Raster, st field.Strategy) error {
	ev, err := s.evaluator(st)
	if err != nil {
		return err
	}
	ev.Rasterize(r, s.u, s.viewport)
	return nil
}

// Frame runs one animation frame into img: advance when running, rasterize
// with the current strategy, then color through the mapper.
func (s *Simulator) Frame(img *image.RGBA) (StepReport, error) {
	var report StepReport
	if s.running {
		report = s.AdvanceOneStep()
	}
	if s.mapper == nil {
		return report, fmt.Errorf("%w: no color mapper", dynamo.ErrInvalidConfig)
	}

	b := img.Bounds()
	s.raster.Resize(b.Dx(), b.Dy())
	if err := s.RasterizeField(s.raster, s.strategy); err != nil {
		return report, err
	}
	field.Render(img, s.raster, s.mapper)
	return report, nil
}

// Run advances the store cfg.Steps times without rendering. Cancellation is
// checked between steps, so the store is always left consistent.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if cfg.Dt > 0 {
		s.dt = cfg.Dt
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Frames:  make([]FrameRecord, 0, cfg.Steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(s.u, s.t)
	}

	initialEnergy := s.u.Energy()
	s.sample(result, cfg, StepReport{Converged: true})

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return result, &dynamo.SimulationError{
				Step:    s.step,
				Time:    s.t,
				Wrapped: fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err()),
			}
		default:
		}

		report := s.AdvanceOneStep()
		result.StepsTaken++
		if report.Anomaly {
			result.Anomalies++
		}

		if cfg.ValidateState && !s.u.Valid() {
			err := &dynamo.SimulationError{Step: s.step, Time: s.t, Wrapped: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			s.logger.Error("simulation diverged", "step", s.step, "time", s.t)
			break
		}

		if result.StepsTaken%every == 0 {
			s.sample(result, cfg, report)
		}
	}

	finalEnergy := s.u.Energy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run finished",
		"steps", result.StepsTaken,
		"anomalies", result.Anomalies,
		"energy_drift", result.EnergyDrift)
	return result, nil
}

func (s *Simulator) sample(result *Result, cfg Config, report StepReport) {
	u := s.u
	px, py := u.Momentum()
	ke, pe := u.KineticEnergy(), u.PotentialEnergy()
	result.Frames = append(result.Frames, FrameRecord{
		Step:       s.step,
		Time:       s.t,
		Particles:  u.Len(),
		Kinetic:    ke,
		Potential:  pe,
		Energy:     ke + pe,
		MomentumX:  px,
		MomentumY:  py,
		Charge:     u.TotalCharge(),
		Iterations: report.Iterations,
		Residual:   report.Residual,
		Anomaly:    report.Anomaly,
	})

	if !cfg.KeepParticles {
		return
	}
	for k := 0; k < u.Len(); k++ {
		result.Particles = append(result.Particles, ParticleRecord{
			Step:   s.step,
			Index:  k,
			Mass:   u.Mass[k],
			Charge: u.Charge[k],
			X:      u.Sx[k],
			Y:      u.Sy[k],
			Vx:     u.Vx[k],
			Vy:     u.Vy[k],
		})
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt < 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, cfg.Steps)
	}
	if s.stepper == nil {
		return fmt.Errorf("%w: no integrator", dynamo.ErrInvalidConfig)
	}
	return nil
}
