package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/crazy3lf/colorconv"

	"github.com/san-kum/orbisim/internal/clut"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
	"github.com/san-kum/orbisim/internal/viz"
)

const background = "#0a0a0a"

func header(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))
}

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	dotsX, dotsY := canvas.Dots()
	width := float64(dotsX) * scale
	height := float64(dotsY) * scale

	var sb strings.Builder
	header(&sb, width, height)
	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", fill))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrajectoryToSVG draws a 2-D trajectory, such as a phase portrait, scaled
// to fill the image with a 10% margin. y grows upwards.
func TrajectoryToSVG(points []struct{ X, Y float64 }, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	header(&sb, float64(width), float64(height))
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// ChargeColor returns the hex color of a particle with charge q in the hues
// of the field palette, fading to grey as |q| goes to zero.
func ChargeColor(q float64) string {
	hue := clut.PositiveHue
	if q < 0 {
		hue = clut.NegativeHue
	}
	sat := math.Min(1, math.Abs(q))
	r, g, b, err := colorconv.HSVToRGB(hue, sat, 0.9)
	if err != nil {
		return "#888888"
	}
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// PathsToSVG draws the particles of u as seen through vp on a w×h image:
// one polyline per predicted path and one circle per particle, sized by
// mass the way the editor draws them.
func PathsToSVG(u *universe.Universe, paths [][]sim.Point, vp view.Viewport, w, h int) string {
	var sb strings.Builder
	header(&sb, float64(w), float64(h))

	for k, path := range paths {
		if len(path) == 0 || k >= u.Len() {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-opacity="0.6" stroke-width="1" points="`, ChargeColor(u.Charge[k])))
		x, y := vp.ToPixel(u.Sx[k], u.Sy[k])
		sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		for _, p := range path {
			x, y := vp.ToPixel(p.X, p.Y)
			sb.WriteString(fmt.Sprintf(" %.1f,%.1f", x, y))
		}
		sb.WriteString("\"/>\n")
	}

	for k := 0; k < u.Len(); k++ {
		x, y := vp.ToPixel(u.Sx[k], u.Sy[k])
		r := math.Max(1, u.Mass[k]/vp.MassScale)
		sb.WriteString(fmt.Sprintf("<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"none\" stroke=\"%s\"/>\n", x, y, r, ChargeColor(u.Charge[k])))
	}

	sb.WriteString("</svg>")
	return sb.String()
}
