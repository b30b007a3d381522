package analysis

import (
	"math"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// LyapunovExponent estimates the largest Lyapunov exponent of u using the
// trajectory separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Displace particle 0 of a copy by perturbation along x
// 2. Advance both universes with the same stepper
// 3. λ ≈ mean of ln(|δ(t)|/|δ(0)|) / dt, renormalizing δ when it grows past 1
//
// u is left untouched.
func LyapunovExponent(
	u *universe.Universe,
	stepper sim.Stepper,
	dt float64,
	steps int,
	perturbation float64,
) float64 {
	if u.Len() == 0 || perturbation <= 0 || dt <= 0 {
		return 0
	}

	x := u.Clone()
	xp := u.Clone()
	xp.Sx[0] += perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		stepper.Advance(x, dt)
		stepper.Advance(xp, dt)

		sep := separation(x, xp)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			break
		}
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++
		}

		// Renormalize to prevent overflow
		if sep > 1.0 {
			renormalize(x, xp, d0/sep)
		}
	}

	if count == 0 {
		return 0
	}

	return sumLog / (float64(count) * dt)
}

// separation is the phase-space distance between two universes of equal size.
func separation(a, b *universe.Universe) float64 {
	sep := 0.0
	for i := 0; i < a.Len(); i++ {
		dx := b.Sx[i] - a.Sx[i]
		dy := b.Sy[i] - a.Sy[i]
		dvx := b.Vx[i] - a.Vx[i]
		dvy := b.Vy[i] - a.Vy[i]
		sep += dx*dx + dy*dy + dvx*dvx + dvy*dvy
	}
	return math.Sqrt(sep)
}

func renormalize(ref, p *universe.Universe, scale float64) {
	for i := 0; i < ref.Len(); i++ {
		p.Sx[i] = ref.Sx[i] + (p.Sx[i]-ref.Sx[i])*scale
		p.Sy[i] = ref.Sy[i] + (p.Sy[i]-ref.Sy[i])*scale
		p.Vx[i] = ref.Vx[i] + (p.Vx[i]-ref.Vx[i])*scale
		p.Vy[i] = ref.Vy[i] + (p.Vy[i]-ref.Vy[i])*scale
	}
}
