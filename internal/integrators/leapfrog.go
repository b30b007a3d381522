package integrators

import (
	"math"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// coulomb fills fx, fy with Σ qᵢqⱼ(sᵢ−sⱼ)/d³ evaluated at (sx, sy).
// Coincident pairs are skipped.
func coulomb(u *universe.Universe, sx, sy, fx, fy []float64) {
	n := u.Len()
	for i := 0; i < n; i++ {
		fx[i], fy[i] = 0, 0
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rx := sx[i] - sx[j]
			ry := sy[i] - sy[j]
			d := math.Hypot(rx, ry)
			if d == 0 {
				continue
			}
			f := u.Charge[i] * u.Charge[j] / (d * d * d)
			fx[i] += f * rx
			fy[i] += f * ry
			fx[j] -= f * rx
			fy[j] -= f * ry
		}
	}
}

// Leapfrog is the explicit kick-drift-kick scheme. It is time-reversible but
// only conserves energy on average.
type Leapfrog struct {
	fx, fy []float64
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Name() string { return "leapfrog" }

func (l *Leapfrog) Advance(u *universe.Universe, dt float64) sim.StepReport {
	n := u.Len()
	if len(l.fx) < n {
		l.fx = make([]float64, n)
		l.fy = make([]float64, n)
	}
	halfDt := 0.5 * dt

	coulomb(u, u.Sx, u.Sy, l.fx, l.fy)
	kick(u, l.fx, l.fy, halfDt)
	for i := 0; i < n; i++ {
		u.Sx[i] += u.Vx[i] * dt
		u.Sy[i] += u.Vy[i] * dt
	}
	coulomb(u, u.Sx, u.Sy, l.fx, l.fy)
	kick(u, l.fx, l.fy, halfDt)

	return sim.StepReport{Iterations: 1, Converged: true}
}

func kick(u *universe.Universe, fx, fy []float64, dt float64) {
	for i := 0; i < u.Len(); i++ {
		if m := u.Mass[i]; m != 0 {
			u.Vx[i] += fx[i] * dt / m
			u.Vy[i] += fy[i] * dt / m
		}
	}
}
