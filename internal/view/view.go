// Package view maps between window pixels and universe coordinates.
package view

import "math"

const (
	DefaultScale       = 1.0 / 768
	DefaultMassScale   = 1.0 / 100
	DefaultChargeScale = 1.0 / 100
	MaxZoom            = 20
)

// Viewport holds the affine pixel-to-universe transform:
//
//	x = Scale·px + OffsetX
//	y = Scale·py + OffsetY
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	// VelocityScale converts a pixel drag into universe velocity.
	VelocityScale float64
	// MassScale and ChargeScale convert a glyph radius in pixels into mass
	// and charge.
	MassScale   float64
	ChargeScale float64
	Zoom        int
}

func Default() Viewport {
	return Viewport{
		Scale:         DefaultScale,
		VelocityScale: 4 * DefaultScale,
		MassScale:     DefaultMassScale,
		ChargeScale:   DefaultChargeScale,
	}
}

// ToUniverse maps pixel (px, py) to universe coordinates.
func (v Viewport) ToUniverse(px, py float64) (x, y float64) {
	return v.Scale*px + v.OffsetX, v.Scale*py + v.OffsetY
}

// ToPixel maps universe (x, y) to pixel coordinates.
func (v Viewport) ToPixel(x, y float64) (px, py float64) {
	return (x - v.OffsetX) / v.Scale, (y - v.OffsetY) / v.Scale
}

// SetZoom changes the zoom level, clamped to ±MaxZoom, keeping the universe
// point under pixel (cx, cy) fixed.
func (v *Viewport) SetZoom(level int, cx, cy float64) {
	if level > MaxZoom {
		level = MaxZoom
	}
	if level < -MaxZoom {
		level = -MaxZoom
	}
	old := v.Scale
	v.Zoom = level
	v.Scale = scaleAt(level)
	v.OffsetX += cx * (old - v.Scale)
	v.OffsetY += cy * (old - v.Scale)
	v.VelocityScale = 4 * v.Scale
	v.MassScale = v.Scale * (DefaultMassScale / DefaultScale)
}

// Recenter places the universe origin at pixel (cx, cy).
func (v *Viewport) Recenter(cx, cy float64) {
	v.OffsetX = -cx * v.Scale
	v.OffsetY = -cy * v.Scale
}

// Fit returns the most zoomed-in viewport of a w×h pixel window that still
// shows the universe rectangle [x0,x1]×[y0,y1], centered on it.
func Fit(w, h int, x0, y0, x1, y1 float64) Viewport {
	v := Default()
	if w <= 0 || h <= 0 {
		return v
	}
	need := math.Max((x1-x0)/float64(w), (y1-y0)/float64(h))
	level := MaxZoom
	if need > 0 {
		level = int(math.Floor(math.Log(need/DefaultScale) / math.Log(math.Sqrt(0.5))))
		for level < MaxZoom && scaleAt(level+1) >= need*(1-1e-13) {
			level++
		}
	}
	v.SetZoom(level, 0, 0)
	v.OffsetX = (x0+x1)/2 - v.Scale*float64(w)/2
	v.OffsetY = (y0+y1)/2 - v.Scale*float64(h)/2
	return v
}

func scaleAt(level int) float64 {
	return math.Pow(math.Sqrt(0.5), float64(level)) * DefaultScale
}
