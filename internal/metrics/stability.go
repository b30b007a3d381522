package metrics

import (
	"math"

	"github.com/san-kum/orbisim/internal/universe"
)

// Stability is the fraction of samples in which every particle is finite and
// within radius of the origin.
type Stability struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewStability(radius float64) *Stability {
	return &Stability{
		name:   "stability",
		radius: radius,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(u *universe.Universe, t float64) {
	s.samples++
	for i := 0; i < u.Len(); i++ {
		r := math.Hypot(u.Sx[i], u.Sy[i])
		if math.IsNaN(r) || r > s.radius {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
