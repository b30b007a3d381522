package analysis

import (
	"math"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// SweepPoint summarizes a fixed-duration run at one step size.
type SweepPoint struct {
	Dt             float64
	MeanIterations float64
	MaxResidual    float64
	Anomalies      int
	EnergyDrift    float64
}

// StepSweep runs a copy of u for duration at every step size in dts and
// reports how hard the solver worked and how well energy was kept. This is
// useful for picking the largest dt the implicit solver still handles.
func StepSweep(
	u *universe.Universe,
	stepper sim.Stepper,
	dts []float64,
	duration float64,
) []SweepPoint {
	results := make([]SweepPoint, 0, len(dts))

	for _, dt := range dts {
		if dt <= 0 {
			continue
		}

		x := u.Clone()
		e0 := x.Energy()
		steps := int(math.Ceil(duration / dt))

		point := SweepPoint{Dt: dt}
		iterations := 0
		for i := 0; i < steps; i++ {
			report := stepper.Advance(x, dt)
			iterations += report.Iterations
			point.MaxResidual = math.Max(point.MaxResidual, report.Residual)
			if report.Anomaly {
				point.Anomalies++
			}
		}

		if steps > 0 {
			point.MeanIterations = float64(iterations) / float64(steps)
		}
		if e0 != 0 {
			point.EnergyDrift = math.Abs(x.Energy()-e0) / math.Abs(e0)
		} else {
			point.EnergyDrift = math.Abs(x.Energy())
		}

		results = append(results, point)
	}

	return results
}
