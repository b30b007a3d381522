package integrators

import (
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// SymplecticEuler updates velocities from the current forces, then positions
// from the new velocities.
type SymplecticEuler struct {
	fx, fy []float64
}

func NewSymplecticEuler() *SymplecticEuler {
	return &SymplecticEuler{}
}

func (e *SymplecticEuler) Name() string { return "euler" }

func (e *SymplecticEuler) Advance(u *universe.Universe, dt float64) sim.StepReport {
	n := u.Len()
	if len(e.fx) < n {
		e.fx = make([]float64, n)
		e.fy = make([]float64, n)
	}
	coulomb(u, u.Sx, u.Sy, e.fx, e.fy)
	kick(u, e.fx, e.fy, dt)
	for i := 0; i < n; i++ {
		u.Sx[i] += u.Vx[i] * dt
		u.Sy[i] += u.Vy[i] * dt
	}
	return sim.StepReport{Iterations: 1, Converged: true}
}
