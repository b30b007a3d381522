package sim

import "github.com/san-kum/orbisim/internal/universe"

const (
	DefaultPathSamples = 64
	DefaultPathStride  = 16
)

// Point is a predicted particle position.
type Point struct {
	X, Y float64
}

// FuturePaths predicts where every particle will be. It steps a copy of the
// store samples×stride times and records positions every stride steps; the
// live store is not touched. paths[k] is the track of particle k.
func (s *Simulator) FuturePaths(samples, stride int) [][]Point {
	if samples <= 0 {
		samples = DefaultPathSamples
	}
	if stride <= 0 {
		stride = DefaultPathStride
	}
	if s.pool == nil || s.pool.capacity != s.u.Cap() {
		s.pool = NewUniversePool(s.u.Cap())
	}
	scratch := s.pool.GetAndCopy(s.u)
	defer s.pool.Put(scratch)

	n := scratch.Len()
	paths := make([][]Point, n)
	for k := range paths {
		paths[k] = make([]Point, 0, samples)
	}
	for t := 0; t < samples; t++ {
		for j := 0; j < stride; j++ {
			s.stepper.Advance(scratch, s.dt)
		}
		for k := 0; k < n; k++ {
			paths[k] = append(paths[k], Point{scratch.Sx[k], scratch.Sy[k]})
		}
	}
	return paths
}

// PredictPaths is FuturePaths for a universe outside any simulator.
func PredictPaths(u *universe.Universe, stepper Stepper, dt float64, samples, stride int) [][]Point {
	return New(u, stepper, dt).FuturePaths(samples, stride)
}
