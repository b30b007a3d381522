package universe

// Attr selects the particle attribute negated by Flip.
type Attr int

const (
	AttrVelocity Attr = iota
	AttrCharge
	AttrMass
)

func (a Attr) String() string {
	switch a {
	case AttrVelocity:
		return "velocity"
	case AttrCharge:
		return "charge"
	case AttrMass:
		return "mass"
	default:
		return "unknown"
	}
}

// Recenter translates positions so the center of mass is at the origin and
// removes the center-of-momentum velocity. With zero total mass it does
// nothing.
func (u *Universe) Recenter() {
	m := u.TotalMass()
	if m == 0 {
		return
	}
	cx, cy, _ := u.CenterOfMass()
	px, py := u.Momentum()
	vx, vy := px/m, py/m
	for i := 0; i < u.n; i++ {
		u.Sx[i] -= cx
		u.Sy[i] -= cy
		u.Vx[i] -= vx
		u.Vy[i] -= vy
	}
}

// ReverseVelocities negates every velocity. With a time-symmetric integrator
// the system then retraces its path.
func (u *Universe) ReverseVelocities() {
	for i := 0; i < u.n; i++ {
		u.Vx[i] = -u.Vx[i]
		u.Vy[i] = -u.Vy[i]
	}
}

// Flip negates one attribute of particle k.
func (u *Universe) Flip(k int, attr Attr) bool {
	if !u.valid(k) {
		return false
	}
	switch attr {
	case AttrVelocity:
		u.Vx[k] = -u.Vx[k]
		u.Vy[k] = -u.Vy[k]
	case AttrCharge:
		u.Charge[k] = -u.Charge[k]
	case AttrMass:
		u.Mass[k] = -u.Mass[k]
	default:
		return false
	}
	return true
}
