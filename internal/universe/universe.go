package universe

// DefaultCapacity is the maximum particle count of a store built by New(0).
const DefaultCapacity = 1000

// Particle is a value copy of one slot in the store.
type Particle struct {
	Mass   float64
	Charge float64
	X, Y   float64
	Vx, Vy float64
}

// Universe is the particle store. Integrators mutate it in place; the field
// evaluators only read it.
type Universe struct {
	Mass   []float64
	Charge []float64
	Sx, Sy []float64
	Vx, Vy []float64

	n        int
	capacity int
}

// New returns an empty universe that can hold up to capacity particles. A
// non-positive capacity selects DefaultCapacity.
func New(capacity int) *Universe {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Universe{
		Mass:     make([]float64, capacity),
		Charge:   make([]float64, capacity),
		Sx:       make([]float64, capacity),
		Sy:       make([]float64, capacity),
		Vx:       make([]float64, capacity),
		Vy:       make([]float64, capacity),
		capacity: capacity,
	}
}

func (u *Universe) Len() int { return u.n }
func (u *Universe) Cap() int { return u.capacity }

// Full reports whether another Add would be dropped.
func (u *Universe) Full() bool { return u.n >= u.capacity }

// Add appends p. At capacity the call is a no-op and returns false.
func (u *Universe) Add(p Particle) bool {
	if u.n >= u.capacity {
		return false
	}
	u.put(u.n, p)
	u.n++
	return true
}

// Particle returns a copy of slot k. ok is false for an invalid index.
func (u *Universe) Particle(k int) (p Particle, ok bool) {
	if !u.valid(k) {
		return Particle{}, false
	}
	return Particle{
		Mass:   u.Mass[k],
		Charge: u.Charge[k],
		X:      u.Sx[k],
		Y:      u.Sy[k],
		Vx:     u.Vx[k],
		Vy:     u.Vy[k],
	}, true
}

// Set overwrites slot k. It returns false for an invalid index.
func (u *Universe) Set(k int, p Particle) bool {
	if !u.valid(k) {
		return false
	}
	u.put(k, p)
	return true
}

// Move places particle k at (x, y), keeping the rest of its attributes.
func (u *Universe) Move(k int, x, y float64) bool {
	if !u.valid(k) {
		return false
	}
	u.Sx[k], u.Sy[k] = x, y
	return true
}

// SetVelocity overwrites the velocity of particle k.
func (u *Universe) SetVelocity(k int, vx, vy float64) bool {
	if !u.valid(k) {
		return false
	}
	u.Vx[k], u.Vy[k] = vx, vy
	return true
}

// Erase removes particle k and shifts every higher particle down one slot.
func (u *Universe) Erase(k int) bool {
	if !u.valid(k) {
		return false
	}
	last := u.n - 1
	copy(u.Mass[k:last], u.Mass[k+1:u.n])
	copy(u.Charge[k:last], u.Charge[k+1:u.n])
	copy(u.Sx[k:last], u.Sx[k+1:u.n])
	copy(u.Sy[k:last], u.Sy[k+1:u.n])
	copy(u.Vx[k:last], u.Vx[k+1:u.n])
	copy(u.Vy[k:last], u.Vy[k+1:u.n])
	u.put(last, Particle{})
	u.n = last
	return true
}

// Clear removes every particle.
func (u *Universe) Clear() {
	for i := 0; i < u.n; i++ {
		u.put(i, Particle{})
	}
	u.n = 0
}

// Clone returns an independent copy with the same capacity.
func (u *Universe) Clone() *Universe {
	c := New(u.capacity)
	c.CopyFrom(u)
	return c
}

// CopyFrom replaces the contents of u with src. Particles beyond u's capacity
// are dropped.
func (u *Universe) CopyFrom(src *Universe) {
	n := src.n
	if n > u.capacity {
		n = u.capacity
	}
	copy(u.Mass, src.Mass[:n])
	copy(u.Charge, src.Charge[:n])
	copy(u.Sx, src.Sx[:n])
	copy(u.Sy, src.Sy[:n])
	copy(u.Vx, src.Vx[:n])
	copy(u.Vy, src.Vy[:n])
	for i := n; i < u.n; i++ {
		u.put(i, Particle{})
	}
	u.n = n
}

func (u *Universe) put(k int, p Particle) {
	u.Mass[k] = p.Mass
	u.Charge[k] = p.Charge
	u.Sx[k] = p.X
	u.Sy[k] = p.Y
	u.Vx[k] = p.Vx
	u.Vy[k] = p.Vy
}

func (u *Universe) valid(k int) bool {
	if k >= 0 && k < u.n {
		return true
	}
	indexFault(k, u.n)
	return false
}
