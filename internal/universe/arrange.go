package universe

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Dipole resets u to two opposite unit charges on crossing paths.
func Dipole(u *Universe) {
	u.Clear()
	u.Add(Particle{Mass: 1, Charge: 1, X: 0.25, Y: 0.25, Vx: 0.8, Vy: -0.1})
	u.Add(Particle{Mass: 1, Charge: -1, X: 0.75, Y: 0.75, Vx: -0.8, Vy: 0.1})
}

// AddRandom appends a unit-mass particle with charge ±1, a position in
// [0.25, 1.25)² and a speed below 1 in a random direction.
func AddRandom(u *Universe, rng *rand.Rand) bool {
	if u.Full() {
		return false
	}
	charge := -1.0
	if rng.Float64() < 0.5 {
		charge = 1
	}
	x := rng.Float64() + 0.25
	y := rng.Float64() + 0.25
	theta := rng.Float64() * 2 * math.Pi
	r := rng.Float64()
	return u.Add(Particle{
		Mass:   1,
		Charge: charge,
		X:      x,
		Y:      y,
		Vx:     r * math.Sin(theta),
		Vy:     r * math.Cos(theta),
	})
}

// Lattice resets u to an n×n grid of resting particles with alternating
// charges of ±0.05 inside the unit square. The grid is truncated at capacity.
func Lattice(u *Universe, n int) {
	u.Clear()
	spacing := 1.0 / float64(n+2)
	for k := 0; k < n*n; k++ {
		i, j := k%n, k/n
		charge := -0.05
		if (i^j)&1 != 0 {
			charge = 0.05
		}
		if !u.Add(Particle{
			Mass:   1,
			Charge: charge,
			X:      float64(j+1) * spacing,
			Y:      float64(i+1) * spacing,
		}) {
			return
		}
	}
}

// Cloud resets u to n resting unit-mass particles scattered over the unit
// square. Each charge takes the sign of 2-D Perlin noise at its position, so
// like charges cluster into patches.
func Cloud(u *Universe, n int, seed int64) {
	u.Clear()
	rng := rand.New(rand.NewSource(seed))
	noise := perlin.NewPerlin(2, 2, 3, seed)
	for k := 0; k < n; k++ {
		x, y := rng.Float64(), rng.Float64()
		charge := 1.0
		if noise.Noise2D(4*x, 4*y) < 0 {
			charge = -1
		}
		if !u.Add(Particle{Mass: 1, Charge: charge, X: x, Y: y}) {
			return
		}
	}
}
