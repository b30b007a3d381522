package field

import (
	"fmt"
	"math"

	"github.com/san-kum/orbisim/internal/dynamo"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

// Evaluator computes the potential of a universe.
type Evaluator interface {
	Strategy() Strategy
	// Potential returns Σ q/d at universe point (x, y).
	Potential(u *universe.Universe, x, y float64) float64
	// Rasterize fills dst with one sample per pixel, pixel (i, j) mapping to
	// universe point vp.ToUniverse(i, j).
	Rasterize(dst *Raster, u *universe.Universe, vp view.Viewport)
}

// New returns an evaluator for s.
func New(s Strategy, opts Options) (Evaluator, error) {
	opts = opts.withDefaults()
	switch s {
	case Precise:
		return &PreciseEvaluator{opts: opts}, nil
	case Bilinear:
		return &BilinearEvaluator{opts: opts}, nil
	case BarnesHut:
		return NewBarnesHut(opts), nil
	}
	return nil, fmt.Errorf("%w: %d", dynamo.ErrUnknownStrategy, int(s))
}

// directSum returns Σ q/max(d, minDist) over the live particles of u.
func directSum(u *universe.Universe, x, y, minDist float64) float64 {
	p := 0.0
	for k := 0; k < u.Len(); k++ {
		d := math.Max(math.Hypot(u.Sx[k]-x, u.Sy[k]-y), minDist)
		p += u.Charge[k] / d
	}
	return p
}

// forEachPatchRow runs fn concurrently over the rows of patches covering an
// w×h raster. Edge patches are clipped to the raster.
func forEachPatchRow(w, h, patch int, fn func(i0, iSize int)) {
	rows := (h + patch - 1) / patch
	dynamo.ParallelFor(rows, 1, func(start, end int) {
		for r := start; r < end; r++ {
			i0 := r * patch
			fn(i0, min(patch, h-i0))
		}
	})
}

// PreciseEvaluator is the reference direct sum.
type PreciseEvaluator struct {
	opts Options
}

func (p *PreciseEvaluator) Strategy() Strategy { return Precise }

func (p *PreciseEvaluator) Potential(u *universe.Universe, x, y float64) float64 {
	return directSum(u, x, y, p.opts.MinDistance)
}

func (p *PreciseEvaluator) Rasterize(dst *Raster, u *universe.Universe, vp view.Viewport) {
	minDist := p.opts.MinDistance
	dynamo.ParallelFor(dst.H, 8, func(start, end int) {
		for i := start; i < end; i++ {
			row := dst.Row(i)
			for j := range row {
				x, y := vp.ToUniverse(float64(j), float64(i))
				row[j] = directSum(u, x, y, minDist)
			}
		}
	})
}
