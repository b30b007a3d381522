package gui

import (
	"fmt"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbisim/internal/control"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// maxPathParticles bounds the cost of predicting paths every frame.
const maxPathParticles = 64

var (
	colPositive = rl.NewColor(255, 140, 90, 180)
	colNegative = rl.NewColor(90, 160, 255, 180)
	colNeutral  = rl.NewColor(160, 160, 160, 180)
)

// pixels returns the field image as the pixel slice raylib uploads.
func (a *App) pixels() []color.RGBA {
	n := len(a.img.Pix) / 4
	if cap(a.pix) < n {
		a.pix = make([]color.RGBA, n)
	}
	a.pix = a.pix[:n]
	for i := range a.pix {
		p := a.img.Pix[4*i : 4*i+4 : 4*i+4]
		a.pix[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	}
	return a.pix
}

func chargeColor(q float64) rl.Color {
	switch {
	case q > 0:
		return colPositive
	case q < 0:
		return colNegative
	}
	return colNeutral
}

func (a *App) drawSim() {
	rl.DrawTexture(a.FieldTex, 0, 0, rl.White)
	u := a.Sim.Universe()
	if a.Ctrl.ShowPaths && u.Len() <= maxPathParticles {
		a.drawPaths(u)
	}
	a.drawGlyphs(u)
}

// drawPaths draws the predicted track of every particle from its current
// position.
func (a *App) drawPaths(u *universe.Universe) {
	vp := *a.Sim.Viewport()
	for k, path := range a.Sim.FuturePaths(sim.DefaultPathSamples, sim.DefaultPathStride) {
		if len(path) == 0 {
			continue
		}
		points := make([]rl.Vector2, 0, len(path)+1)
		x, y := vp.ToPixel(u.Sx[k], u.Sy[k])
		points = append(points, rl.NewVector2(float32(x), float32(y)))
		for _, p := range path {
			x, y := vp.ToPixel(p.X, p.Y)
			points = append(points, rl.NewVector2(float32(x), float32(y)))
		}
		rl.DrawLineStrip(points, chargeColor(u.Charge[k]))
	}
}

// drawGlyphs draws each particle as a mass circle with a velocity arrow
// from its tail to its head. The selected handle is highlighted.
func (a *App) drawGlyphs(u *universe.Universe) {
	sel := a.Ctrl.Selected
	for k, g := range a.Ctrl.Markup().Glyphs {
		col := ColGlyph
		if g.R < 0 {
			col = ColNegMass
		}
		circle := col
		if sel.Index == k && sel.Kind == universe.HandleCircle {
			circle = ColSelect
		}
		rl.DrawCircleLines(int32(g.X0), int32(g.Y0), float32(math.Abs(g.R)), circle)

		tail := rl.NewVector2(float32(g.X0), float32(g.Y0))
		head := rl.NewVector2(float32(g.X1), float32(g.Y1))
		rl.DrawLineEx(tail, head, 1.5, col)
		drawArrowHead(tail, head, col)

		switch {
		case sel.Index != k:
			rl.DrawCircleV(tail, 2, chargeColor(u.Charge[k]))
		case sel.Kind == universe.HandleTailHollow:
			rl.DrawCircleLines(int32(g.X0), int32(g.Y0), control.HollowRadius, ColSelect)
		case sel.Kind == universe.HandleTailFull:
			rl.DrawCircleV(tail, control.HandleRadius, ColSelect)
		case sel.Kind == universe.HandleHead:
			rl.DrawCircleV(head, control.HandleRadius, ColSelect)
			rl.DrawCircleV(tail, 2, chargeColor(u.Charge[k]))
		default:
			rl.DrawCircleV(tail, 2, chargeColor(u.Charge[k]))
		}
	}
}

func drawArrowHead(tail, head rl.Vector2, col rl.Color) {
	dx, dy := head.X-tail.X, head.Y-tail.Y
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l < 1 {
		return
	}
	dx, dy = dx/l*6, dy/l*6
	left := rl.NewVector2(head.X-dx-dy/2, head.Y-dy+dx/2)
	right := rl.NewVector2(head.X-dx+dy/2, head.Y-dy-dx/2)
	rl.DrawLineV(head, left, col)
	rl.DrawLineV(head, right, col)
}

func (a *App) DrawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}

	rectX, rectY := 30, a.height-110
	width, height := 400, 60

	// Normalize Data
	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.6f", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}
