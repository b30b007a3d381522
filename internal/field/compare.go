package field

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/orbisim/internal/dynamo"
)

// ErrorStats summarizes how far a raster deviates from a reference.
type ErrorStats struct {
	// MeanRelative is Σ|a−ref| / Σ|ref|.
	MeanRelative float64
	MaxAbs       float64
	RMS          float64
	MeanAbs      float64
}

// Compare measures a against the reference raster ref.
func Compare(a, ref *Raster) (ErrorStats, error) {
	if a.W != ref.W || a.H != ref.H {
		return ErrorStats{}, fmt.Errorf("%w: raster %dx%d vs reference %dx%d",
			dynamo.ErrInvalidConfig, a.W, a.H, ref.W, ref.H)
	}
	n := len(ref.Samples)
	if n == 0 {
		return ErrorStats{}, nil
	}

	diff := make([]float64, n)
	floats.SubTo(diff, a.Samples, ref.Samples)
	for i, d := range diff {
		diff[i] = math.Abs(d)
	}

	stats := ErrorStats{
		MaxAbs:  floats.Max(diff),
		RMS:     floats.Norm(diff, 2) / math.Sqrt(float64(n)),
		MeanAbs: stat.Mean(diff, nil),
	}
	if norm := floats.Norm(ref.Samples, 1); norm > 0 {
		stats.MeanRelative = floats.Sum(diff) / norm
	}
	return stats, nil
}
