package field

import (
	"github.com/san-kum/orbisim/internal/quadtree"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

// BarnesHutEvaluator rebuilds a quadtree for every raster and sums, for each
// patch, the node summaries accepted by the opening criterion.
type BarnesHutEvaluator struct {
	opts Options
	tree quadtree.Tree
}

func NewBarnesHut(opts Options) *BarnesHutEvaluator {
	return &BarnesHutEvaluator{opts: opts.withDefaults()}
}

func (b *BarnesHutEvaluator) Strategy() Strategy { return BarnesHut }

// Tree exposes the tree built by the last call.
func (b *BarnesHutEvaluator) Tree() *quadtree.Tree { return &b.tree }

func (b *BarnesHutEvaluator) Potential(u *universe.Universe, x, y float64) float64 {
	b.tree.Build(u)
	return b.tree.Potential(x, y, b.opts.Theta, b.opts.MinDistance)
}

func (b *BarnesHutEvaluator) Rasterize(dst *Raster, u *universe.Universe, vp view.Viewport) {
	b.tree.Build(u)

	patch := b.opts.PatchSize
	theta := b.opts.Theta
	minDist := b.opts.MinDistance
	half := 0.5 * vp.Scale * float64(patch)

	forEachPatchRow(dst.W, dst.H, patch, func(i0, iSize int) {
		slice := getSources(u.Len())
		defer putSources(slice)

		for j0 := 0; j0 < dst.W; j0 += patch {
			jSize := min(patch, dst.W-j0)
			x0, y0 := vp.ToUniverse(float64(j0), float64(i0))
			*slice = b.tree.Gather((*slice)[:0], x0+half, y0+half, half, theta)

			for i := 0; i < iSize; i++ {
				row := dst.Row(i0 + i)[j0 : j0+jSize]
				clear(row)
				_, y := vp.ToUniverse(0, float64(i0+i))
				sumSources(row, *slice, vp, j0, y, minDist)
			}
		}
	})
}

// SliceSizes reports the number of gathered sources for every patch of a
// w×h raster, for profiling the opening threshold.
func (b *BarnesHutEvaluator) SliceSizes(u *universe.Universe, vp view.Viewport, w, h int) []int {
	b.tree.Build(u)
	patch := b.opts.PatchSize
	half := 0.5 * vp.Scale * float64(patch)

	var sizes []int
	var scratch []quadtree.Source
	for i0 := 0; i0 < h; i0 += patch {
		for j0 := 0; j0 < w; j0 += patch {
			x0, y0 := vp.ToUniverse(float64(j0), float64(i0))
			scratch = b.tree.Gather(scratch[:0], x0+half, y0+half, half, b.opts.Theta)
			sizes = append(sizes, len(scratch))
		}
	}
	return sizes
}
