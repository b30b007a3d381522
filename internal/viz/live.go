package viz

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbisim/internal/control"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
	"github.com/san-kum/orbisim/internal/view"
)

const (
	defaultCols     = 72
	defaultRows     = 22
	historyCapacity = 300
	statsWidth      = 48
	// maxPathParticles bounds the cost of predicting paths every frame.
	maxPathParticles = 64
	// field panel padding, in cells
	padX, padY = 2, 1
)

type TickMsg time.Time

// Model is the Bubble Tea model of the live view.
type Model struct {
	sim       *sim.Simulator
	ctrl      *control.Controller
	title     string
	frameRate int
	cols      int
	rows      int
	img       *image.RGBA
	canvas    *Canvas
	orbits    bool
	report    sim.StepReport
	anomalies int
	frame     int
	energy    []float64
	iters     []float64
	showHelp  bool
	recording bool
	gifPath   string
	frames    []*image.Paletted
	err       error
}

// NewModel wraps s in a live view. The viewport is fitted to the particles.
func NewModel(s *sim.Simulator, title string, frameRate int, seed int64) Model {
	if frameRate <= 0 {
		frameRate = 30
	}
	m := Model{
		sim:       s,
		title:     title,
		frameRate: frameRate,
		canvas:    NewCanvas(defaultCols, defaultRows),
		energy:    make([]float64, 0, historyCapacity),
		iters:     make([]float64, 0, historyCapacity),
		gifPath:   "orbisim.gif",
	}
	m.ctrl = control.New(s, defaultCols, 2*defaultRows, seed)
	m.resize(defaultCols, defaultRows)
	s.SetViewport(fitParticles(s.Universe(), defaultCols, 2*defaultRows))
	return m
}

// SetGIFPath sets where the R key saves recordings.
func (m *Model) SetGIFPath(path string) { m.gifPath = path }

// Err returns the error that stopped the view, if any.
func (m Model) Err() error { return m.err }

// fitParticles frames the bounding box of u's particles with a margin, or
// the unit square when u is empty.
func fitParticles(u *universe.Universe, w, h int) view.Viewport {
	x0, y0, x1, y1 := 0.0, 0.0, 1.0, 1.0
	if n := u.Len(); n > 0 {
		x0, y0 = math.Inf(1), math.Inf(1)
		x1, y1 = math.Inf(-1), math.Inf(-1)
		for k := 0; k < n; k++ {
			x0, x1 = math.Min(x0, u.Sx[k]), math.Max(x1, u.Sx[k])
			y0, y1 = math.Min(y0, u.Sy[k]), math.Max(y1, u.Sy[k])
		}
		margin := math.Max(0.25, 0.25*math.Max(x1-x0, y1-y0))
		x0, y0 = x0-margin, y0-margin
		x1, y1 = x1+margin, y1+margin
	}
	return view.Fit(w, h, x0, y0, x1, y1)
}

func (m *Model) resize(cols, rows int) {
	if cols < 8 {
		cols = 8
	}
	if rows < 4 {
		rows = 4
	}
	m.cols, m.rows = cols, rows
	m.img = image.NewRGBA(image.Rect(0, 0, cols, 2*rows))
	m.canvas.Resize(cols, rows)
	m.ctrl.Width, m.ctrl.Height = cols, 2*rows
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and advances the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "esc", "ctrl+c":
			if m.recording {
				m.saveGIF()
			}
			return m, tea.Quit
		case "tab":
			m.orbits = !m.orbits
		case "T":
			NextTheme()
		case "R":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		default:
			m.ctrl.Key(key)
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width-statsWidth-2*padX, msg.Height-2*padY)
	case TickMsg:
		if err := m.step(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// mouse maps a cell event onto field pixels: one pixel across and two down
// per cell.
func (m *Model) mouse(msg tea.MouseMsg) {
	px := float64(msg.X-padX) + 0.5
	py := float64(msg.Y-padY)*2 + 1
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.ctrl.Press(px, py)
		case tea.MouseButtonWheelUp:
			m.ctrl.Do(control.ActionZoomIn)
		case tea.MouseButtonWheelDown:
			m.ctrl.Do(control.ActionZoomOut)
		}
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft {
			m.ctrl.Drag(px, py)
		} else {
			m.ctrl.Move(px, py)
		}
	}
}

// step runs one frame. The field is only rasterized when it is shown.
func (m *Model) step() error {
	m.frame++
	if m.orbits {
		if m.sim.Running() {
			m.report = m.sim.AdvanceOneStep()
		}
	} else {
		report, err := m.sim.Frame(m.img)
		if err != nil {
			return err
		}
		m.report = report
	}
	if !m.sim.Running() {
		return nil
	}

	if m.report.Anomaly {
		m.anomalies++
	}
	m.energy = appendHistory(m.energy, m.sim.Universe().Energy())
	m.iters = appendHistory(m.iters, float64(m.report.Iterations))
	if m.recording {
		m.captureFrame()
	}
	return nil
}

func appendHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) drawOrbits() {
	m.canvas.Clear()
	u := m.sim.Universe()
	vp := *m.sim.Viewport()

	if m.ctrl.ShowPaths && u.Len() <= maxPathParticles {
		for _, path := range m.sim.FuturePaths(sim.DefaultPathSamples, sim.DefaultPathStride) {
			for _, p := range path {
				x, y := vp.ToPixel(p.X, p.Y)
				m.canvas.Set(int(2*x), int(2*y))
			}
		}
	}

	for _, g := range m.ctrl.Markup().Glyphs {
		m.canvas.DrawLine(int(2*g.X0), int(2*g.Y0), int(2*g.X1), int(2*g.Y1))
		m.canvas.Dot(int(2*g.X0)-1, int(2*g.Y0)-1)
	}
}

// View renders the field or orbit panel next to the statistics panel.
func (m Model) View() string {
	var main string
	if m.orbits {
		m.drawOrbits()
		main = m.canvas.String()
	} else {
		main = HalfBlock(m.img)
	}

	st := panelStyles(CurrentTheme)
	u := m.sim.Universe()

	var s strings.Builder
	s.WriteString(st.header.Render(GradientText(strings.ToUpper(m.title), CurrentTheme.Primary, CurrentTheme.Secondary)) + "\n")
	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render("● REC") + "\n\n")
	case m.sim.Running():
		s.WriteString(StatusRunning.Render(AnimatedSpinner(m.frame)+" RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	px, py := u.Momentum()
	row("Field", m.sim.Strategy().String())
	row("Particles", fmt.Sprintf("%d / %d", u.Len(), u.Cap()))
	row("Time", fmt.Sprintf("%.3f (step %d)", m.sim.Time(), m.sim.Steps()))
	row("Energy", fmt.Sprintf("%.6f", u.Energy()))
	row("Momentum", fmt.Sprintf("(%.2e, %.2e)", px, py))
	row("Charge", fmt.Sprintf("%.4f", u.TotalCharge()))
	row("Zoom", fmt.Sprintf("%d", m.sim.Viewport().Zoom))
	row("Solver", fmt.Sprintf("%s %d it  %.1e", ProgressBar(float64(m.report.Iterations)/16, 8), m.report.Iterations, m.report.Residual))
	row("", SparklineChart(m.iters, 30))
	if m.anomalies > 0 {
		s.WriteString(st.label.Render("Anomalies") + st.warn.Render(fmt.Sprintf("%d", m.anomalies)) + "\n")
	}
	if sel := m.ctrl.Selected; !sel.IsNull() {
		row("Selected", fmt.Sprintf("#%d", sel.Index))
	}

	s.WriteString(st.help.Render("─────────────────────\nSP:Pause B/G/H:Field -/=:Zoom\nTAB:Orbits P:Paths ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(main), st.border.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  B / G / H - Bilinear/Precise/BH     ║
║  - = 0    - Zoom out / in / reset    ║
║  9        - Recenter                 ║
║  M        - Add random particle      ║
║  R        - Reverse velocities       ║
║  F        - Flip selected handle     ║
║  C V X    - Copy / paste / cut       ║
║  Delete   - Delete selected particle ║
║  P        - Toggle predicted paths   ║
║  Tab      - Field / orbits           ║
║  Shift+R  - Toggle GIF recording     ║
║  Shift+T  - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

func (m *Model) toggleRecording() {
	if m.recording {
		m.saveGIF()
		m.recording = false
		m.frames = nil
		return
	}
	m.recording = true
	m.frames = make([]*image.Paletted, 0)
}

// captureFrame quantizes the current field image into the recording.
func (m *Model) captureFrame() {
	b := m.img.Bounds()
	frame := image.NewPaletted(b, palette.Plan9)
	draw.FloydSteinberg.Draw(frame, b, m.img, image.Point{})
	m.frames = append(m.frames, frame)
}

func (m *Model) saveGIF() {
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	delay := 100 / m.frameRate
	for _, f := range m.frames {
		anim.Image = append(anim.Image, f)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		m.err = err
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.err = err
	}
}

// Run starts the live view and blocks until the user quits.
func Run(s *sim.Simulator, title string, frameRate int, seed int64) error {
	return RunModel(NewModel(s, title, frameRate, seed))
}

// RunModel is Run for a model that was already set up.
func RunModel(m Model) error {
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	return final.(Model).Err()
}
