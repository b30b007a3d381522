package field

import "github.com/san-kum/orbisim/internal/quadtree"

const (
	DefaultPatchSize   = 32
	DefaultNearFactor  = 8
	DefaultMinDistance = 1e-9
)

// Options tunes the evaluators. Zero fields take their defaults.
type Options struct {
	// PatchSize is the edge of a square patch in pixels.
	PatchSize int
	// Theta is the Barnes–Hut opening threshold.
	Theta float64
	// NearFactor sets the bilinear cutoff radius in patch widths.
	NearFactor float64
	// MinDistance clamps sample-to-source distances so that samples on top
	// of a particle stay finite.
	MinDistance float64
}

func (o Options) withDefaults() Options {
	if o.PatchSize <= 0 {
		o.PatchSize = DefaultPatchSize
	}
	if o.Theta <= 0 {
		o.Theta = quadtree.DefaultTheta
	}
	if o.NearFactor <= 0 {
		o.NearFactor = DefaultNearFactor
	}
	if o.MinDistance <= 0 {
		o.MinDistance = DefaultMinDistance
	}
	return o
}
