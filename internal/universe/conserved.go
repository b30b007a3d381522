package universe

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/orbisim/internal/dynamo"
)

// TotalMass returns Σ m.
func (u *Universe) TotalMass() float64 {
	return floats.Sum(u.Mass[:u.n])
}

// TotalCharge returns Σ q.
func (u *Universe) TotalCharge() float64 {
	return floats.Sum(u.Charge[:u.n])
}

// Momentum returns Σ m·v.
func (u *Universe) Momentum() (px, py float64) {
	m := u.Mass[:u.n]
	return floats.Dot(m, u.Vx[:u.n]), floats.Dot(m, u.Vy[:u.n])
}

// CenterOfMass returns the mass-weighted mean position. ok is false when the
// total mass is zero.
func (u *Universe) CenterOfMass() (x, y float64, ok bool) {
	m := u.TotalMass()
	if m == 0 {
		return 0, 0, false
	}
	mass := u.Mass[:u.n]
	return floats.Dot(mass, u.Sx[:u.n]) / m, floats.Dot(mass, u.Sy[:u.n]) / m, true
}

// KineticEnergy returns Σ m·|v|²/2.
func (u *Universe) KineticEnergy() float64 {
	ke := 0.0
	for i := 0; i < u.n; i++ {
		ke += 0.5 * u.Mass[i] * (u.Vx[i]*u.Vx[i] + u.Vy[i]*u.Vy[i])
	}
	return ke
}

// PotentialEnergy returns Σ qᵢqⱼ/dᵢⱼ over unordered pairs. Coincident pairs
// are skipped.
func (u *Universe) PotentialEnergy() float64 {
	pe := 0.0
	for i := 0; i < u.n; i++ {
		for j := i + 1; j < u.n; j++ {
			d := math.Hypot(u.Sx[i]-u.Sx[j], u.Sy[i]-u.Sy[j])
			if d == 0 {
				continue
			}
			pe += u.Charge[i] * u.Charge[j] / d
		}
	}
	return pe
}

// Energy returns kinetic plus potential energy.
func (u *Universe) Energy() float64 {
	return u.KineticEnergy() + u.PotentialEnergy()
}

// Valid reports whether every live value is finite.
func (u *Universe) Valid() bool {
	return u.State().IsValid()
}

// State packs the live particles as [m q x y vx vy] per particle.
func (u *Universe) State() dynamo.State {
	s := make(dynamo.State, 0, u.n*6)
	for i := 0; i < u.n; i++ {
		s = append(s, u.Mass[i], u.Charge[i], u.Sx[i], u.Sy[i], u.Vx[i], u.Vy[i])
	}
	return s
}
