package experiment

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/dynamo"
	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/integrators"
	"github.com/san-kum/orbisim/internal/metrics"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// Arrangement fills an empty universe with an initial configuration.
// Generated arrangements stop at capacity; explicit particle lists fail.
type Arrangement func(u *universe.Universe, cfg *config.Config) error

type Registry struct {
	arrangements map[string]Arrangement
}

func NewRegistry() *Registry {
	r := &Registry{
		arrangements: make(map[string]Arrangement),
	}

	r.arrangements["dipole"] = func(u *universe.Universe, cfg *config.Config) error {
		universe.Dipole(u)
		return nil
	}
	r.arrangements["lattice"] = func(u *universe.Universe, cfg *config.Config) error {
		universe.Lattice(u, cfg.Particles.LatticeSize)
		return nil
	}
	r.arrangements["random"] = func(u *universe.Universe, cfg *config.Config) error {
		rng := rand.New(rand.NewSource(cfg.Seed))
		for i := 0; i < cfg.Particles.Count; i++ {
			if !universe.AddRandom(u, rng) {
				break
			}
		}
		return nil
	}
	r.arrangements["cloud"] = func(u *universe.Universe, cfg *config.Config) error {
		universe.Cloud(u, cfg.Particles.Count, cfg.Seed)
		return nil
	}
	r.arrangements["custom"] = func(u *universe.Universe, cfg *config.Config) error {
		for i, p := range cfg.Particles.Custom {
			if !u.Add(universe.Particle{Mass: p.Mass, Charge: p.Charge, X: p.X, Y: p.Y, Vx: p.VX, Vy: p.VY}) {
				return fmt.Errorf("%w: custom particle %d of %d (capacity %d)",
					dynamo.ErrCapacity, i+1, len(cfg.Particles.Custom), u.Cap())
			}
		}
		return nil
	}

	return r
}

// BuildUniverse returns a universe laid out by the configured arrangement.
func (r *Registry) BuildUniverse(cfg *config.Config) (*universe.Universe, error) {
	fn, ok := r.arrangements[cfg.Arrangement]
	if !ok {
		return nil, fmt.Errorf("unknown arrangement: %s", cfg.Arrangement)
	}
	u := universe.New(cfg.Capacity)
	if err := fn(u, cfg); err != nil {
		return nil, err
	}
	return u, nil
}

// GetIntegrator returns a stepper with the solver settings applied.
func (r *Registry) GetIntegrator(cfg *config.Config) (sim.Stepper, error) {
	st, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, err
	}
	if g, ok := st.(*integrators.Greenspan); ok {
		if cfg.Solver.MaxIterations > 0 {
			g.MaxIterations = cfg.Solver.MaxIterations
		}
		g.Tolerance = cfg.Solver.Tolerance
		if cfg.Solver.AnomalyFloor > 0 {
			g.AnomalyFloor = cfg.Solver.AnomalyFloor
		}
		g.ParallelThreshold = cfg.Solver.ParallelThreshold
	}
	return st, nil
}

func (r *Registry) GetStrategy(cfg *config.Config) (field.Strategy, error) {
	return field.ParseStrategy(cfg.Strategy)
}

func FieldOptions(cfg *config.Config) field.Options {
	return field.Options{
		PatchSize:   cfg.Field.PatchSize,
		Theta:       cfg.Field.Theta,
		NearFactor:  cfg.Field.NearFactor,
		MinDistance: cfg.Field.MinDistance,
	}
}

func (r *Registry) ListArrangements() []string {
	names := make([]string, 0, len(r.arrangements))
	for name := range r.arrangements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics() []sim.Metric {
	return metrics.Standard()
}
