package sim

import (
	"context"
	"sync"

	"github.com/san-kum/orbisim/internal/universe"
)

// Ensemble runs several steppers from the same initial universe
// concurrently, each on its own copy.
type Ensemble struct {
	base     *universe.Universe
	steppers []Stepper
	dt       float64
	metrics  func() []Metric
}

// NewEnsemble prepares one run per stepper. metrics, when non-nil, is called
// once per run so runs never share metric state.
func NewEnsemble(base *universe.Universe, dt float64, metrics func() []Metric, steppers ...Stepper) *Ensemble {
	return &Ensemble{base: base, steppers: steppers, dt: dt, metrics: metrics}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.steppers))
	errs := make([]error, len(e.steppers))

	var wg sync.WaitGroup
	for i, st := range e.steppers {
		wg.Add(1)
		go func(idx int, st Stepper) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Dt = e.dt

			sim := New(e.base.Clone(), st, e.dt)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, cfgCopy)
		}(i, st)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
