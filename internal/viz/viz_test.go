package viz

import (
	"image"
	"image/color"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/orbisim/internal/clut"
	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/integrators"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	if got := c.Grid[0][0]; got != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", got)
	}
	if got := c.Grid[0][1]; got != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", got)
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(2, 1)
	c.DrawLine(0, 0, 3, 0)

	for i, r := range c.Grid[0] {
		if r != 0x2809 {
			t.Errorf("cell %d = %U, want U+2809", i, r)
		}
	}

	c.Clear()
	c.DrawLine(-10, -10, -1, -5)
	if c.Grid[0][0] != brailleBlank || c.Grid[0][1] != brailleBlank {
		t.Error("offscreen line should not draw")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	s := c.String()
	if n := strings.Count(s, "\n"); n != 1 {
		t.Errorf("got %d newlines, want 1", n)
	}
	if strings.HasSuffix(s, "\n") {
		t.Error("trailing newline")
	}

	c.Resize(4, 3)
	if w, h := c.Dots(); w != 8 || h != 12 {
		t.Errorf("Dots() = %d, %d, want 8, 12", w, h)
	}
}

func TestHalfBlock(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})

	lines := strings.Split(HalfBlock(img), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, "▀"); n != 3 {
			t.Errorf("line %d has %d blocks, want 3", i, n)
		}
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(CurrentTheme.Name)

	SetTheme("ember")
	if CurrentTheme.Name != "ember" {
		t.Fatalf("theme = %s, want ember", CurrentTheme.Name)
	}
	if got := GetTheme("nope"); got.Name != Themes[0].Name {
		t.Errorf("GetTheme(nope) = %s, want %s", got.Name, Themes[0].Name)
	}
	start := CurrentTheme.Name
	for range ThemeNames() {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("cycling all themes ended on %s, want %s", CurrentTheme.Name, start)
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	u := universe.New(8)
	universe.Dipole(u)
	s := sim.New(u, integrators.NewGreenspan(), sim.DefaultDt)
	s.SetMapper(clut.MustNew())
	return NewModel(s, "dipole", 30, 1)
}

func TestModelKeys(t *testing.T) {
	m := newModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("h")})
	m = next.(Model)
	if got := m.sim.Strategy(); got != field.BarnesHut {
		t.Errorf("strategy = %v, want %v", got, field.BarnesHut)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = next.(Model)
	if m.sim.Running() {
		t.Error("space should pause")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if !m.orbits {
		t.Error("tab should switch to orbits")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelTick(t *testing.T) {
	m := newModel(t)
	e0 := m.sim.Universe().Energy()

	for i := 0; i < 3; i++ {
		next, cmd := m.Update(TickMsg{})
		m = next.(Model)
		if cmd == nil {
			t.Fatal("tick did not schedule the next tick")
		}
	}
	if err := m.Err(); err != nil {
		t.Fatal(err)
	}
	if m.sim.Steps() != 3 {
		t.Errorf("steps = %d, want 3", m.sim.Steps())
	}
	if len(m.energy) != 3 {
		t.Errorf("energy history = %d, want 3", len(m.energy))
	}
	if d := m.energy[2] - e0; d > 1e-4 || d < -1e-4 {
		t.Errorf("energy drifted by %g", d)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestModelResize(t *testing.T) {
	m := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(Model)

	if m.cols != 140-statsWidth-2*padX || m.rows != 40-2*padY {
		t.Errorf("size = %dx%d", m.cols, m.rows)
	}
	if b := m.img.Bounds(); b.Dx() != m.cols || b.Dy() != 2*m.rows {
		t.Errorf("image = %v", b)
	}
	if m.ctrl.Height != 2*m.rows {
		t.Errorf("controller height = %d", m.ctrl.Height)
	}
}

func TestFitParticles(t *testing.T) {
	u := universe.New(8)
	universe.Dipole(u)
	vp := fitParticles(u, 72, 44)

	for k := 0; k < u.Len(); k++ {
		x, y := vp.ToPixel(u.Sx[k], u.Sy[k])
		if x < 0 || x >= 72 || y < 0 || y >= 44 {
			t.Errorf("particle %d at (%g, %g) is off screen", k, x, y)
		}
	}
}

func TestPicker(t *testing.T) {
	m := newPicker(nil, 30)
	if len(m.items) == 0 {
		t.Fatal("no presets listed")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(picker)
	if len(m.items) > 1 && m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	if !strings.Contains(m.View(), m.items[0].arrangement) {
		t.Error("menu does not list arrangements")
	}
}
