package analysis

import (
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// PhasePortrait2D holds one particle's (x, vx) trajectory
type PhasePortrait2D struct {
	Index  int
	Points []struct{ X, Y float64 }
}

// GeneratePhasePortrait advances a copy of u and records particle k's
// position against its velocity along x.
func GeneratePhasePortrait(
	u *universe.Universe,
	stepper sim.Stepper,
	k int,
	dt float64,
	steps int,
) *PhasePortrait2D {
	if k < 0 || k >= u.Len() {
		return nil
	}

	portrait := &PhasePortrait2D{
		Index:  k,
		Points: make([]struct{ X, Y float64 }, 0, steps),
	}

	x := u.Clone()
	for i := 0; i < steps; i++ {
		stepper.Advance(x, dt)

		portrait.Points = append(portrait.Points, struct{ X, Y float64 }{
			X: x.Sx[k],
			Y: x.Vx[k],
		})
	}

	return portrait
}

// PhasePortraitToASCII plots the portrait on a width x height character
// grid with 10% padding and the axes drawn where they are visible.
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}
	return plot(portrait.Points, width, height)
}

func plot(points []struct{ X, Y float64 }, width, height int) string {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	x0, x1 := padded(floats.Min(xs), floats.Max(xs))
	y0, y1 := padded(floats.Min(ys), floats.Max(ys))

	col := func(x float64) int { return int((x - x0) / (x1 - x0) * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-y0)/(y1-y0)*float64(height-1)) }

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	for i := range xs {
		r, c := row(ys[i]), col(xs[i])
		if r >= 0 && r < height && c >= 0 && c < width {
			grid[r][c] = '•'
		}
	}

	// axes only fill blank cells
	if x0 <= 0 && x1 >= 0 {
		c := col(0)
		for r := range grid {
			if grid[r][c] == ' ' {
				grid[r][c] = '│'
			}
		}
	}
	if y0 <= 0 && y1 >= 0 {
		r := row(0)
		for c := range grid[r] {
			if grid[r][c] == ' ' {
				grid[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, line := range grid {
		sb.WriteString(string(line))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func padded(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - 0.1*span, hi + 0.1*span
}

// PoincareSection records points when a trajectory crosses a line
type PoincareSection struct {
	Points []struct{ X, Y float64 }
}

// GeneratePoincareSection records particle k's (x, vx) each time its y
// coordinate crosses threshold going upward.
func GeneratePoincareSection(
	u *universe.Universe,
	stepper sim.Stepper,
	k int,
	threshold float64,
	dt float64,
	steps int,
) *PoincareSection {
	if k < 0 || k >= u.Len() {
		return nil
	}

	section := &PoincareSection{
		Points: make([]struct{ X, Y float64 }, 0),
	}

	x := u.Clone()
	prevVal := x.Sy[k]

	for i := 0; i < steps; i++ {
		stepper.Advance(x, dt)
		currVal := x.Sy[k]

		// Detect positive-going crossing
		if prevVal < threshold && currVal >= threshold {
			section.Points = append(section.Points, struct{ X, Y float64 }{
				X: x.Sx[k],
				Y: x.Vx[k],
			})
		}

		prevVal = currVal
	}

	return section
}

// PoincareSectionToASCII plots the crossings like PhasePortraitToASCII.
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}

	return plot(section.Points, width, height)
}
