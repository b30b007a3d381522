package control

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/san-kum/orbisim/internal/field"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// Controller applies user input to a simulator whose frames are drawn at
// Width×Height pixels.
type Controller struct {
	Sim       *sim.Simulator
	Width     int
	Height    int
	Selected  universe.Handle
	ShowPaths bool
	Logger    *slog.Logger

	rng     *rand.Rand
	clip    universe.Clipboard
	markup  Markup
	pressed universe.Handle

	// pointer position in universe coordinates
	pointX, pointY float64
	downX, downY   float64
	downScalar     float64
}

func New(s *sim.Simulator, width, height int, seed int64) *Controller {
	return &Controller{
		Sim:       s,
		Width:     width,
		Height:    height,
		Selected:  universe.Null,
		pressed:   universe.Null,
		ShowPaths: true,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Markup returns the glyphs for the current frame.
func (c *Controller) Markup() *Markup {
	c.markup.Build(c.Sim.Universe(), *c.Sim.Viewport(), c.Selected)
	return &c.markup
}

// Key applies the action bound to key and reports whether it was bound.
func (c *Controller) Key(key string) (Action, bool) {
	a, ok := KeyAction(key)
	if ok {
		c.Do(a)
	}
	return a, ok
}

func (c *Controller) Do(a Action) {
	u := c.Sim.Universe()
	vp := c.Sim.Viewport()
	cx, cy := float64(c.Width)/2, float64(c.Height)/2

	switch a {
	case ActionToggleRun:
		c.Sim.Toggle()
	case ActionZoomOut:
		vp.SetZoom(vp.Zoom-1, cx, cy)
	case ActionZoomIn:
		vp.SetZoom(vp.Zoom+1, cx, cy)
	case ActionZoomReset:
		vp.SetZoom(0, cx, cy)
	case ActionRecenter:
		u.Recenter()
		vp.Recenter(cx, cy)
	case ActionAddRandom:
		if !universe.AddRandom(u, c.rng) {
			c.logger().Debug("universe full", "capacity", u.Cap())
		}
	case ActionBilinear:
		c.Sim.SetStrategy(field.Bilinear)
	case ActionPrecise:
		c.Sim.SetStrategy(field.Precise)
	case ActionBarnesHut:
		c.Sim.SetStrategy(field.BarnesHut)
	case ActionReverse:
		u.ReverseVelocities()
	case ActionFlip:
		u.FlipSelected(c.Selected)
	case ActionDelete:
		c.deleteSelected()
	case ActionCopy:
		c.copySelected()
	case ActionPaste:
		c.clip.Paste(u, c.pointX, c.pointY)
	case ActionCut:
		c.copySelected()
		c.deleteSelected()
	case ActionTogglePaths:
		c.ShowPaths = !c.ShowPaths
	}
}

func (c *Controller) deleteSelected() {
	if c.Selected.Kind != universe.HandleTailFull {
		return
	}
	c.Sim.Universe().EraseSelected(&c.Selected, &c.pressed)
}

func (c *Controller) copySelected() {
	if c.Selected.Kind != universe.HandleTailFull || !c.clip.Copy(c.Sim.Universe(), c.Selected.Index) {
		c.clip = universe.Clipboard{}
	}
}

func (c *Controller) track(px, py float64) {
	c.pointX, c.pointY = c.Sim.Viewport().ToUniverse(px, py)
}

// Move tracks the pointer and highlights the handle under it. A hollow
// tail stays selected until another particle's handle is under the pointer.
func (c *Controller) Move(px, py float64) {
	c.track(px, py)
	h := c.Markup().Find(px, py, HandleRadius, maskAll)
	if c.Selected.Kind == universe.HandleTailHollow && (h.IsNull() || h.Index == c.Selected.Index) {
		return
	}
	c.Selected = h
}

// Press grabs the handle under the pointer. Pressing a full tail twice in a
// row hollows it.
func (c *Controller) Press(px, py float64) {
	c.track(px, py)
	c.downX, c.downY = c.pointX, c.pointY
	c.downScalar = 0

	h := c.Markup().Find(px, py, HandleRadius, maskAll)
	if h.Kind == universe.HandleTailFull && c.pressed.Kind == universe.HandleTailFull && c.pressed.Index == h.Index {
		h.Kind = universe.HandleTailHollow
	}
	c.pressed = h
	c.Selected = h

	u := c.Sim.Universe()
	switch h.Kind {
	case universe.HandleCircle:
		c.downScalar = u.Mass[h.Index]
	case universe.HandleTailHollow:
		c.downScalar = u.Charge[h.Index]
	}
}

// Drag edits the grabbed handle, or pans the view when nothing is grabbed.
func (c *Controller) Drag(px, py float64) {
	u := c.Sim.Universe()
	vp := c.Sim.Viewport()
	x, y := vp.ToUniverse(px, py)
	c.pointX, c.pointY = x, y

	k := c.Selected.Index
	switch c.Selected.Kind {
	case universe.HandleNull:
		vp.OffsetX = c.downX - vp.Scale*px
		vp.OffsetY = c.downY - vp.Scale*py
		c.pointX, c.pointY = c.downX, c.downY
	case universe.HandleTailFull:
		u.Move(k, x, y)
	case universe.HandleHead:
		tailX, tailY := vp.ToPixel(u.Sx[k], u.Sy[k])
		u.SetVelocity(k, vp.VelocityScale*(px-tailX), vp.VelocityScale*(py-tailY))
	case universe.HandleCircle, universe.HandleTailHollow:
		ratio := dragRatio(u.Sx[k], u.Sy[k], c.downX, c.downY, x, y)
		if c.Selected.Kind == universe.HandleCircle {
			u.Mass[k] = ratio * c.downScalar
		} else {
			u.Charge[k] = ratio * c.downScalar
		}
	}
}

// dragRatio is the signed ratio of the pointer's distance from the particle
// center now to its distance at press time; it turns negative once the
// pointer crosses to the other side of the center.
func dragRatio(cx, cy, qx, qy, px, py float64) float64 {
	d0 := math.Hypot(qx-cx, qy-cy)
	if d0 == 0 {
		return 1
	}
	ratio := math.Hypot(px-cx, py-cy) / d0
	if (px-cx)*(qx-cx)+(py-cy)*(qy-cy) < 0 {
		ratio = -ratio
	}
	return ratio
}
