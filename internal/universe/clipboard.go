package universe

// Clipboard holds the mass, charge and velocity of a copied particle.
type Clipboard struct {
	Mass   float64
	Charge float64
	Vx, Vy float64
	full   bool
}

// Copy captures particle k. It returns false for an invalid index.
func (c *Clipboard) Copy(u *Universe, k int) bool {
	p, ok := u.Particle(k)
	if !ok {
		return false
	}
	c.Mass, c.Charge, c.Vx, c.Vy = p.Mass, p.Charge, p.Vx, p.Vy
	c.full = true
	return true
}

// Paste appends the clipboard particle at (x, y). It is a no-op when the
// clipboard is empty or the store is full.
func (c *Clipboard) Paste(u *Universe, x, y float64) bool {
	if !c.full {
		return false
	}
	return u.Add(Particle{Mass: c.Mass, Charge: c.Charge, X: x, Y: y, Vx: c.Vx, Vy: c.Vy})
}
