package field

import (
	"math"

	"github.com/san-kum/orbisim/internal/quadtree"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

// BilinearEvaluator sums particles within the cutoff radius of a patch
// center exactly and interpolates the rest from the four patch corners.
type BilinearEvaluator struct {
	opts Options
}

func (b *BilinearEvaluator) Strategy() Strategy { return Bilinear }

// Potential has no patch to interpolate over, so it is exact.
func (b *BilinearEvaluator) Potential(u *universe.Universe, x, y float64) float64 {
	return directSum(u, x, y, b.opts.MinDistance)
}

func (b *BilinearEvaluator) Rasterize(dst *Raster, u *universe.Universe, vp view.Viewport) {
	patch := b.opts.PatchSize
	minDist := b.opts.MinDistance
	width := vp.Scale * float64(patch)
	cutoff := b.opts.NearFactor * width
	n := u.Len()

	forEachPatchRow(dst.W, dst.H, patch, func(i0, iSize int) {
		near := getSources(n)
		defer putSources(near)

		for j0 := 0; j0 < dst.W; j0 += patch {
			jSize := min(patch, dst.W-j0)
			x0, y0 := vp.ToUniverse(float64(j0), float64(i0))
			x1, y1 := x0+width, y0+width
			xm, ym := 0.5*(x0+x1), 0.5*(y0+y1)

			var a00, a01, a10, a11 float64
			*near = (*near)[:0]
			for k := 0; k < n; k++ {
				sx, sy, q := u.Sx[k], u.Sy[k], u.Charge[k]
				if math.Hypot(sx-xm, sy-ym) <= cutoff {
					*near = append(*near, quadtree.Source{X: sx, Y: sy, Charge: q})
					continue
				}
				a00 += q / math.Max(math.Hypot(sx-x0, sy-y0), minDist)
				a01 += q / math.Max(math.Hypot(sx-x0, sy-y1), minDist)
				a10 += q / math.Max(math.Hypot(sx-x1, sy-y0), minDist)
				a11 += q / math.Max(math.Hypot(sx-x1, sy-y1), minDist)
			}

			for i := 0; i < iSize; i++ {
				row := dst.Row(i0 + i)[j0 : j0+jSize]
				fy := float64(i) / float64(patch)
				for j := range row {
					fx := float64(j) / float64(patch)
					row[j] = a00*(1-fy)*(1-fx) + a01*fy*(1-fx) + a10*(1-fy)*fx + a11*fy*fx
				}
				_, y := vp.ToUniverse(0, float64(i0+i))
				sumSources(row, *near, vp, j0, y, minDist)
			}
		}
	})
}

// sumSources adds Σ q/d for sources to a row of samples starting at pixel
// column j0 at universe height y.
func sumSources(row []float64, sources []quadtree.Source, vp view.Viewport, j0 int, y, minDist float64) {
	for _, s := range sources {
		dy := s.Y - y
		for j := range row {
			x, _ := vp.ToUniverse(float64(j0+j), 0)
			d := math.Max(math.Hypot(s.X-x, dy), minDist)
			row[j] += s.Charge / d
		}
	}
}
