package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

const (
	width       = 70
	height      = 20
	trailLength = 400
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type point struct{ x, y int }

// LiveRenderer is an observer that redraws the particles as characters on a
// plain ANSI terminal, at most frameRate times a second. Positive charges
// are drawn '+', negative ones '-' and neutral ones 'o'.
type LiveRenderer struct {
	title     string
	frameRate int
	out       io.Writer
	vp        view.Viewport
	lastFrame time.Time
	canvas    [][]rune
	trail     []point
}

// NewLiveRenderer writes frames of the universe seen through vp to out.
// vp is scaled from its own pixels onto the character grid, two rows per
// column-width.
func NewLiveRenderer(out io.Writer, title string, frameRate int, vp view.Viewport) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 15
	}
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		title:     title,
		frameRate: frameRate,
		out:       out,
		vp:        vp,
		canvas:    canvas,
		trail:     make([]point, 0, trailLength),
	}
}

func (r *LiveRenderer) OnStep(u *universe.Universe, t float64, report sim.StepReport) {
	if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.draw(u)
	r.render(u, t, report)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// cell maps a universe point to a character cell.
func (r *LiveRenderer) cell(x, y float64) point {
	px, py := r.vp.ToPixel(x, y)
	return point{int(math.Floor(px)), int(math.Floor(py / 2))}
}

func (r *LiveRenderer) draw(u *universe.Universe) {
	for k := 0; k < u.Len(); k++ {
		r.trail = append(r.trail, r.cell(u.Sx[k], u.Sy[k]))
	}
	if over := len(r.trail) - trailLength; over > 0 {
		r.trail = r.trail[over:]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	for k := 0; k < u.Len(); k++ {
		c := 'o'
		switch q := u.Charge[k]; {
		case q > 0:
			c = '+'
		case q < 0:
			c = '-'
		}
		pt := r.cell(u.Sx[k], u.Sy[k])
		r.set(pt.x, pt.y, c)
	}
}

func (r *LiveRenderer) render(u *universe.Universe, t float64, report sim.StepReport) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.3f  n=%d\n", r.title, t, u.Len()))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  E=%.6f  iterations=%d  residual=%.2e\n", u.Energy(), report.Iterations, report.Residual))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }

// Viewport returns a viewport that frames u on the character grid.
func Viewport(u *universe.Universe) view.Viewport {
	x0, y0, x1, y1 := 0.0, 0.0, 1.0, 1.0
	if n := u.Len(); n > 0 {
		x0, y0 = math.Inf(1), math.Inf(1)
		x1, y1 = math.Inf(-1), math.Inf(-1)
		for k := 0; k < n; k++ {
			x0, x1 = math.Min(x0, u.Sx[k]), math.Max(x1, u.Sx[k])
			y0, y1 = math.Min(y0, u.Sy[k]), math.Max(y1, u.Sy[k])
		}
		m := math.Max(0.5, 0.5*math.Max(x1-x0, y1-y0))
		x0, y0, x1, y1 = x0-m, y0-m, x1+m, y1+m
	}
	return view.Fit(width, 2*height, x0, y0, x1, y1)
}
