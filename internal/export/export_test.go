package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
	"github.com/san-kum/orbisim/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2, "#00ff00")

	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("got %d dots, want 2", n)
	}
	if !strings.Contains(svg, `width="8" height="16"`) {
		t.Error("wrong size")
	}
}

func TestTrajectoryToSVG(t *testing.T) {
	if TrajectoryToSVG(nil, 100, 100, "#fff") != "" {
		t.Error("short trajectory should give empty output")
	}
	pts := []struct{ X, Y float64 }{{0, 0}, {1, 1}, {2, 0}}
	svg := TrajectoryToSVG(pts, 100, 50, "#ff0000")
	if n := strings.Count(svg, " L"); n != 2 {
		t.Errorf("got %d segments, want 2", n)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("unterminated document")
	}
}

func TestChargeColor(t *testing.T) {
	pos, neg := ChargeColor(1), ChargeColor(-1)
	if pos == neg {
		t.Errorf("both signs map to %s", pos)
	}
	if len(pos) != 7 || pos[0] != '#' {
		t.Errorf("bad color %q", pos)
	}
	grey := ChargeColor(0)
	if grey[1:3] != grey[3:5] || grey[3:5] != grey[5:7] {
		t.Errorf("neutral charge should be grey, got %s", grey)
	}
}

func TestPathsToSVG(t *testing.T) {
	u := universe.New(4)
	universe.Dipole(u)
	paths := [][]sim.Point{
		{{X: 0.3, Y: 0.2}, {X: 0.35, Y: 0.15}},
		{{X: 0.7, Y: 0.8}},
	}

	svg := PathsToSVG(u, paths, view.Default(), 768, 768)
	if n := strings.Count(svg, "<polyline"); n != 2 {
		t.Errorf("got %d paths, want 2", n)
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("got %d particles, want 2", n)
	}
	// unit mass at the default mass scale is a 100 px circle
	if !strings.Contains(svg, `r="100.0"`) {
		t.Error("particle radius does not follow the mass scale")
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{R: 200, A: 255})

	path := filepath.Join(t.TempDir(), "frames", "f.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	got, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	if r, _, _, _ := got.At(1, 1).RGBA(); r>>8 != 200 {
		t.Errorf("red = %d, want 200", r>>8)
	}
}
