package field

// Raster is a row-major grid of potential samples, one per pixel.
type Raster struct {
	W, H    int
	Samples []float64
}

func NewRaster(w, h int) *Raster {
	r := &Raster{}
	r.Resize(w, h)
	return r
}

// Resize sets the dimensions, reusing the sample buffer when it is large
// enough. Existing samples are not preserved.
func (r *Raster) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	r.W, r.H = w, h
	n := w * h
	if cap(r.Samples) < n {
		r.Samples = make([]float64, n)
	}
	r.Samples = r.Samples[:n]
}

func (r *Raster) At(x, y int) float64 { return r.Samples[y*r.W+x] }

func (r *Raster) Row(y int) []float64 { return r.Samples[y*r.W : (y+1)*r.W] }
