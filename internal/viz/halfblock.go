package viz

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// HalfBlock renders img two pixel rows per text line: the upper pixel is the
// foreground of '▀' and the lower one its background.
func HalfBlock(img *image.RGBA) string {
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			style := lipgloss.NewStyle().Foreground(hexColor(top))
			if y+1 < b.Max.Y {
				bottom := img.RGBAAt(x, y+1)
				style = style.Background(hexColor(bottom))
			}
			sb.WriteString(style.Render("▀"))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex())
}
