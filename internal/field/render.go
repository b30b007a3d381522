package field

import (
	"image"
	"image/color"
)

// Mapper converts a potential sample into a pixel.
type Mapper interface {
	Color(sample float64) color.RGBA
}

// Render writes r into dst through m. Only the overlap of the raster and the
// image bounds is written.
func Render(dst *image.RGBA, r *Raster, m Mapper) {
	b := dst.Bounds()
	w := min(r.W, b.Dx())
	h := min(r.H, b.Dy())
	for y := 0; y < h; y++ {
		row := r.Row(y)
		off := dst.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			c := m.Color(row[x])
			px := dst.Pix[off+4*x : off+4*x+4 : off+4*x+4]
			px[0], px[1], px[2], px[3] = c.R, c.G, c.B, c.A
		}
	}
}
