package analysis

import (
	"fmt"

	"github.com/san-kum/orbisim/internal/sim"
)

var columns = map[string]func(f sim.FrameRecord) float64{
	"time":       func(f sim.FrameRecord) float64 { return f.Time },
	"particles":  func(f sim.FrameRecord) float64 { return float64(f.Particles) },
	"kinetic":    func(f sim.FrameRecord) float64 { return f.Kinetic },
	"potential":  func(f sim.FrameRecord) float64 { return f.Potential },
	"energy":     func(f sim.FrameRecord) float64 { return f.Energy },
	"momentum_x": func(f sim.FrameRecord) float64 { return f.MomentumX },
	"momentum_y": func(f sim.FrameRecord) float64 { return f.MomentumY },
	"charge":     func(f sim.FrameRecord) float64 { return f.Charge },
	"iterations": func(f sim.FrameRecord) float64 { return float64(f.Iterations) },
	"residual":   func(f sim.FrameRecord) float64 { return f.Residual },
}

// Series extracts one column of a frame series by its CSV name.
func Series(frames []sim.FrameRecord, column string) ([]float64, error) {
	get, ok := columns[column]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", column)
	}

	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = get(f)
	}
	return out, nil
}

// SampleInterval returns the time between consecutive frames, or 0 with
// fewer than two frames.
func SampleInterval(frames []sim.FrameRecord) float64 {
	if len(frames) < 2 {
		return 0
	}
	return (frames[len(frames)-1].Time - frames[0].Time) / float64(len(frames)-1)
}
