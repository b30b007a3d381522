package control

import (
	"math"
	"testing"

	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/integrators"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

func newController(t *testing.T) *Controller {
	t.Helper()
	u := universe.New(8)
	universe.Dipole(u)
	return New(sim.New(u, integrators.NewGreenspan(), sim.DefaultDt), 768, 768, 1)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key  string
		want Action
		ok   bool
	}{
		{" ", ActionToggleRun, true},
		{"-", ActionZoomOut, true},
		{"=", ActionZoomIn, true},
		{"9", ActionRecenter, true},
		{"b", ActionBilinear, true},
		{"g", ActionPrecise, true},
		{"h", ActionBarnesHut, true},
		{"delete", ActionDelete, true},
		{"q", ActionQuit, true},
		{"z", ActionNone, false},
	}

	for _, tt := range tests {
		got, ok := KeyAction(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("KeyAction(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDo_RunAndStrategy(t *testing.T) {
	c := newController(t)

	c.Do(ActionToggleRun)
	if c.Sim.Running() {
		t.Error("expected simulator paused")
	}
	c.Do(ActionToggleRun)
	if !c.Sim.Running() {
		t.Error("expected simulator running")
	}

	strategies := map[Action]field.Strategy{
		ActionPrecise:   field.Precise,
		ActionBarnesHut: field.BarnesHut,
		ActionBilinear:  field.Bilinear,
	}
	for a, want := range strategies {
		c.Do(a)
		if got := c.Sim.Strategy(); got != want {
			t.Errorf("%v: strategy = %v, want %v", a, got, want)
		}
	}
}

func TestDo_Zoom(t *testing.T) {
	c := newController(t)
	vp := c.Sim.Viewport()

	x0, y0 := vp.ToUniverse(384, 384)
	c.Do(ActionZoomIn)
	if vp.Zoom != 1 {
		t.Errorf("expected zoom 1, got %d", vp.Zoom)
	}
	x1, y1 := vp.ToUniverse(384, 384)
	if !near(x0, x1) || !near(y0, y1) {
		t.Errorf("center moved from (%v,%v) to (%v,%v)", x0, y0, x1, y1)
	}

	c.Do(ActionZoomOut)
	c.Do(ActionZoomOut)
	if vp.Zoom != -1 {
		t.Errorf("expected zoom -1, got %d", vp.Zoom)
	}
	c.Do(ActionZoomReset)
	if vp.Zoom != 0 {
		t.Errorf("expected zoom 0, got %d", vp.Zoom)
	}
}

func TestDo_Recenter(t *testing.T) {
	c := newController(t)
	c.Do(ActionRecenter)

	x, y, ok := c.Sim.Universe().CenterOfMass()
	if !ok || !near(x, 0) || !near(y, 0) {
		t.Errorf("center of mass = (%v,%v), want origin", x, y)
	}
	ox, oy := c.Sim.Viewport().ToUniverse(384, 384)
	if !near(ox, 0) || !near(oy, 0) {
		t.Errorf("window center maps to (%v,%v), want origin", ox, oy)
	}
}

func TestDo_AddRandomAndReverse(t *testing.T) {
	c := newController(t)
	u := c.Sim.Universe()

	c.Do(ActionAddRandom)
	if u.Len() != 3 {
		t.Fatalf("expected 3 particles, got %d", u.Len())
	}

	vx := u.Vx[0]
	c.Do(ActionReverse)
	if u.Vx[0] != -vx {
		t.Errorf("expected reversed velocity %v, got %v", -vx, u.Vx[0])
	}
}

func TestPressDragTail(t *testing.T) {
	c := newController(t)
	u := c.Sim.Universe()

	c.Press(192, 192)
	if c.Selected.Kind != universe.HandleTailFull || c.Selected.Index != 0 {
		t.Fatalf("expected full tail of particle 0, got %+v", c.Selected)
	}

	c.Drag(200, 210)
	if !near(u.Sx[0], 200.0/768) || !near(u.Sy[0], 210.0/768) {
		t.Errorf("particle at (%v,%v), want (%v,%v)", u.Sx[0], u.Sy[0], 200.0/768, 210.0/768)
	}

	c.Press(200, 210)
	if c.Selected.Kind != universe.HandleTailHollow {
		t.Fatalf("expected hollow tail after second press, got %+v", c.Selected)
	}

	// grab the hollow ring and pull it out to twice its radius
	c.Press(205, 210)
	if c.Selected.Kind != universe.HandleTailHollow {
		t.Fatalf("expected hollow tail on ring press, got %+v", c.Selected)
	}
	c.Drag(210, 210)
	if !near(u.Charge[0], 2) {
		t.Errorf("expected charge 2, got %v", u.Charge[0])
	}
	c.Drag(195, 210)
	if !near(u.Charge[0], -1) {
		t.Errorf("expected charge -1 across the center, got %v", u.Charge[0])
	}
}

func TestPressDragHead(t *testing.T) {
	c := newController(t)
	u := c.Sim.Universe()

	c.Press(345.6, 172.8)
	if c.Selected.Kind != universe.HandleHead || c.Selected.Index != 0 {
		t.Fatalf("expected head of particle 0, got %+v", c.Selected)
	}

	c.Drag(192+76.8, 192)
	if !near(u.Vx[0], 0.4) || !near(u.Vy[0], 0) {
		t.Errorf("velocity = (%v,%v), want (0.4,0)", u.Vx[0], u.Vy[0])
	}

	c.Do(ActionFlip)
	if !near(u.Vx[0], -0.4) {
		t.Errorf("expected flipped velocity, got %v", u.Vx[0])
	}
}

func TestDragPansView(t *testing.T) {
	c := newController(t)

	c.Press(700, 50)
	if !c.Selected.IsNull() {
		t.Fatalf("expected no handle, got %+v", c.Selected)
	}
	c.Drag(690, 50)
	if vp := c.Sim.Viewport(); !near(vp.OffsetX, 10.0/768) || !near(vp.OffsetY, 0) {
		t.Errorf("offset = (%v,%v), want (%v,0)", vp.OffsetX, vp.OffsetY, 10.0/768)
	}
}

func TestClipboardActions(t *testing.T) {
	c := newController(t)
	u := c.Sim.Universe()

	c.Press(192, 192)
	c.Do(ActionCopy)
	c.Move(100, 100)
	c.Do(ActionPaste)
	if u.Len() != 3 {
		t.Fatalf("expected 3 particles after paste, got %d", u.Len())
	}
	if !near(u.Sx[2], 100.0/768) || u.Charge[2] != 1 || u.Vx[2] != 0.8 {
		t.Errorf("unexpected pasted particle x=%v q=%v vx=%v", u.Sx[2], u.Charge[2], u.Vx[2])
	}

	c.Press(576, 576)
	c.Do(ActionCut)
	if u.Len() != 2 {
		t.Fatalf("expected 2 particles after cut, got %d", u.Len())
	}
	if !c.Selected.IsNull() {
		t.Errorf("expected selection cleared, got %+v", c.Selected)
	}

	c.Do(ActionPaste)
	if u.Len() != 3 || u.Charge[2] != -1 {
		t.Errorf("expected cut particle pasted back, got %d particles", u.Len())
	}
}

func TestDeleteNeedsTail(t *testing.T) {
	c := newController(t)

	c.Press(345.6, 172.8)
	c.Do(ActionDelete)
	if c.Sim.Universe().Len() != 2 {
		t.Error("delete on a head handle should do nothing")
	}

	c.Press(192, 192)
	c.Do(ActionDelete)
	if c.Sim.Universe().Len() != 1 {
		t.Error("expected particle 0 deleted")
	}
}

func TestMarkupGlyphs(t *testing.T) {
	c := newController(t)
	m := c.Markup()
	if len(m.Glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, got %d", len(m.Glyphs))
	}
	g := m.Glyphs[0]
	if !near(g.X0, 192) || !near(g.X1, 345.6) || !near(g.R, 100) {
		t.Errorf("unexpected glyph %+v", g)
	}
}
