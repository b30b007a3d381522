package control

import (
	"math"

	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

const (
	// HandleRadius is how far, in pixels, the pointer may be from a handle
	// and still grab it.
	HandleRadius = 4.0
	// HollowRadius is the drawn radius of a hollow tail.
	HollowRadius = 5.0
)

const maskAll = ^uint(0)

// Glyph is the on-screen geometry of one particle in pixels.
type Glyph struct {
	X0, Y0 float64
	X1, Y1 float64
	// R is the mass circle radius; negative mass draws a dashed circle.
	R float64
}

type handleEntry struct {
	x, y, r float64
	h       universe.Handle
}

// Markup holds the glyphs and grabbable handles of the last drawn frame.
type Markup struct {
	Glyphs  []Glyph
	handles []handleEntry
}

// Build recomputes glyphs and handles for u seen through vp.
func (m *Markup) Build(u *universe.Universe, vp view.Viewport, selected universe.Handle) {
	n := u.Len()
	m.Glyphs = m.Glyphs[:0]
	m.handles = m.handles[:0]

	for k := 0; k < n; k++ {
		x0, y0 := vp.ToPixel(u.Sx[k], u.Sy[k])
		g := Glyph{
			X0: x0,
			Y0: y0,
			X1: x0 + u.Vx[k]/vp.VelocityScale,
			Y1: y0 + u.Vy[k]/vp.VelocityScale,
			R:  u.Mass[k] / vp.MassScale,
		}
		m.Glyphs = append(m.Glyphs, g)
		m.add(g.X0, g.Y0, math.Abs(g.R), universe.HandleCircle, k)
	}
	for k, g := range m.Glyphs {
		if selected.Kind == universe.HandleTailHollow && selected.Index == k {
			m.add(g.X0, g.Y0, HollowRadius, universe.HandleTailHollow, k)
		} else {
			m.add(g.X0, g.Y0, 0, universe.HandleTailFull, k)
		}
		m.add(g.X1, g.Y1, 0, universe.HandleHead, k)
	}
}

func (m *Markup) add(x, y, r float64, kind universe.HandleKind, k int) {
	m.handles = append(m.handles, handleEntry{x: x, y: y, r: r, h: universe.Handle{Kind: kind, Index: k}})
}

// Find returns the handle whose outline is nearest to pixel (x, y) within
// maxDist. Later handles win ties, so tails and heads beat circles.
func (m *Markup) Find(x, y, maxDist float64, mask uint) universe.Handle {
	best := universe.Null
	bestDist := maxDist
	for _, e := range m.handles {
		if 1<<uint(e.h.Kind)&mask == 0 {
			continue
		}
		d := math.Abs(math.Hypot(x-e.x, y-e.y) - e.r)
		if d <= bestDist {
			best = e.h
			bestDist = d
		}
	}
	return best
}
