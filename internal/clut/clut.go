// Package clut maps potential samples to colors through a lookup table.
package clut

import (
	"fmt"
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
)

const (
	Size = 1024
	// DefaultScale maps a potential of ±4 onto the ends of the table.
	DefaultScale = Size / 8
)

// Hues for the two signs of the potential, in degrees.
const (
	NegativeHue = 215.0
	PositiveHue = 15.0
)

// Table is a color lookup table indexed by scaled potential.
type Table struct {
	Colors [Size]color.RGBA
	// Scale converts a potential sample into table steps.
	Scale float64
}

// New builds the default diverging table: blue for negative potential, red
// for positive, dark at zero.
func New() (*Table, error) {
	t := &Table{Scale: DefaultScale}
	half := Size / 2
	for j := 0; j < Size; j++ {
		a := float64(j-half) / float64(half)
		hue := PositiveHue
		if a < 0 {
			hue = NegativeHue
		}
		mag := math.Abs(a)
		// Saturation fades toward white at the extremes.
		r, g, b, err := colorconv.HSVToRGB(hue, 1-0.6*mag*mag, math.Sqrt(mag))
		if err != nil {
			return nil, fmt.Errorf("clut entry %d: %w", j, err)
		}
		t.Colors[j] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return t, nil
}

// MustNew is New for package-level initialization.
func MustNew() *Table {
	t, err := New()
	if err != nil {
		panic(err)
	}
	return t
}

// Index returns the table slot for sample. Out-of-range values saturate and
// NaN maps to the zero-potential slot.
func (t *Table) Index(sample float64) int {
	if math.IsNaN(sample) {
		return Size / 2
	}
	v := sample*t.Scale + Size/2 + 0.5
	if v > Size-1 {
		v = Size - 1
	}
	if v < 0 {
		v = 0
	}
	return int(v)
}

// Color maps a potential sample to a pixel.
func (t *Table) Color(sample float64) color.RGBA {
	return t.Colors[t.Index(sample)]
}
