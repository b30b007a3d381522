package gui

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/control"
	"github.com/san-kum/orbisim/internal/experiment"
	"github.com/san-kum/orbisim/internal/sim"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)    // Deep Black
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
	ColGlyph   = rl.NewColor(230, 230, 230, 200)
	ColNegMass = rl.NewColor(120, 120, 120, 200)
)

// keyNames maps raylib keys onto the editor key names understood by
// control.KeyAction.
var keyNames = map[int32]string{
	rl.KeySpace:  " ",
	rl.KeyMinus:  "-",
	rl.KeyEqual:  "=",
	rl.KeyZero:   "0",
	rl.KeyNine:   "9",
	rl.KeyM:      "m",
	rl.KeyB:      "b",
	rl.KeyG:      "g",
	rl.KeyH:      "h",
	rl.KeyR:      "r",
	rl.KeyF:      "f",
	rl.KeyDelete: "delete",
	rl.KeyC:      "c",
	rl.KeyV:      "v",
	rl.KeyX:      "x",
	rl.KeyP:      "p",
	rl.KeyQ:      "q",
}

type preset struct {
	arrangement, name string
}

type App struct {
	Sim       *sim.Simulator
	Ctrl      *control.Controller
	Config    *config.Config
	Running   bool
	InMenu    bool
	InConfig  bool
	Presets   []preset
	Selected  int
	Params    map[string]float64
	ParamKeys []string
	ParamSel  int
	// Telemetry is a ring buffer of total energy for the HUD graph.
	Telemetry  []float64
	MaxHistory int
	ShowHUD    bool
	Font       rl.Font

	FieldTex rl.Texture2D
	img      *image.RGBA
	pix      []color.RGBA
	width    int
	height   int
	quit     bool
	anomaly  int
	report   sim.StepReport
	logger   *slog.Logger
	err      error
}

// initWindow opens a resizable w×h window titled "orbisim" at 60 FPS and
// disables the default exit key.
func initWindow(w, h int) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(w), int32(h), "orbisim")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables bilinear texture filtering.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp creates an App. With interactive set it starts in the preset menu;
// otherwise cfg is started immediately.
func NewApp(cfg *config.Config, interactive bool, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	app := &App{
		Config:     cfg,
		Font:       loadFont(),
		InMenu:     interactive,
		MaxHistory: 400,
		Telemetry:  make([]float64, 0, 400),
		ShowHUD:    true,
		logger:     logger,
	}

	arrangements := make([]string, 0, len(config.Presets))
	for a := range config.Presets {
		arrangements = append(arrangements, a)
	}
	sort.Strings(arrangements)
	for _, a := range arrangements {
		for _, p := range config.ListPresets(a) {
			app.Presets = append(app.Presets, preset{arrangement: a, name: p})
		}
	}

	app.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	if !interactive {
		app.start()
	}
	return app
}

// RunInteractive opens the window on the preset menu and blocks until it
// is closed.
func RunInteractive(logger *slog.Logger) error {
	cfg := config.DefaultConfig()
	initWindow(cfg.View.Width, cfg.View.Height)
	defer rl.CloseWindow()
	app := NewApp(cfg, true, logger)
	defer app.unload()
	app.RunLoop()
	return app.err
}

// Run opens the window on cfg and blocks until it is closed.
func Run(cfg *config.Config, logger *slog.Logger) error {
	initWindow(cfg.View.Width, cfg.View.Height)
	defer rl.CloseWindow()
	app := NewApp(cfg, false, logger)
	defer app.unload()
	app.RunLoop()
	return app.err
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// resize reallocates the field image and its texture for a w×h window.
func (a *App) resize(w, h int) {
	if w <= 0 || h <= 0 || (w == a.width && h == a.height) {
		return
	}
	if a.img != nil {
		rl.UnloadTexture(a.FieldTex)
	}
	a.width, a.height = w, h
	a.img = image.NewRGBA(image.Rect(0, 0, w, h))

	img := rl.GenImageColor(w, h, rl.Black)
	a.FieldTex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	if a.Ctrl != nil {
		a.Ctrl.Width, a.Ctrl.Height = w, h
	}
}

func (a *App) unload() {
	if a.img != nil {
		rl.UnloadTexture(a.FieldTex)
	}
	rl.UnloadFont(a.Font)
}

func (a *App) selectPreset(i int) {
	p := a.Presets[i]
	a.Config = config.GetPreset(p.arrangement, p.name)
	a.Params = a.Config.GetParams()
	a.ParamKeys = config.ParamNames
	a.ParamSel = 0
}

// start builds a simulator from the current config and parameters.
func (a *App) start() {
	for k, v := range a.Params {
		if err := a.Config.SetParam(k, v); err != nil {
			a.logger.Warn("parameter rejected", "param", k, "error", err)
		}
	}
	exp, err := experiment.New(a.Config, a.logger)
	if err != nil {
		a.logger.Error("cannot start", "arrangement", a.Config.Arrangement, "error", err)
		a.InConfig = true
		return
	}
	a.Sim = exp.GetSimulator()
	a.Ctrl = control.New(a.Sim, a.width, a.height, a.Config.Seed)
	a.Ctrl.Logger = a.logger
	a.Telemetry = a.Telemetry[:0]
	a.anomaly = 0
	a.Running = true
	a.InConfig = false
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	if a.InMenu {
		if rl.IsKeyPressed(rl.KeyQ) {
			a.quit = true
			return
		}
		if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
			a.Selected++
		}
		if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
			a.Selected--
		}

		// Wrap selection
		if a.Selected >= len(a.Presets) {
			a.Selected = 0
		}
		if a.Selected < 0 {
			a.Selected = len(a.Presets) - 1
		}

		if len(a.Presets) > 0 && (rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace)) {
			a.selectPreset(a.Selected)
			a.InMenu = false
			a.InConfig = true
			a.Running = false
		}
		return
	}

	if a.InConfig {
		a.updateConfig()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Running = false
		return
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.ShowHUD = !a.ShowHUD
	}

	for key, name := range keyNames {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if action, ok := a.Ctrl.Key(name); ok && action == control.ActionQuit {
			a.quit = true
			return
		}
	}

	a.updateMouse()
	a.step()
}

func (a *App) updateConfig() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.InConfig = false
		return
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		a.start()
		return
	}
	if len(a.ParamKeys) == 0 {
		return
	}

	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel--
		if a.ParamSel < 0 {
			a.ParamSel = len(a.ParamKeys) - 1
		}
	}

	key := a.ParamKeys[a.ParamSel]
	factor := 1.1
	if rl.IsKeyDown(rl.KeyLeftShift) {
		factor = 2
	}
	// Settings are scaled rather than stepped since they span decades.
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.Params[key] = nudge(a.Params[key], factor)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.Params[key] = nudge(a.Params[key], 1/factor)
	}
}

// nudge scales v by factor, stepping off zero first.
func nudge(v, factor float64) float64 {
	if v == 0 {
		if factor > 1 {
			return 1
		}
		return 0
	}
	next := v * factor
	if v >= 1 && next-v < 1 && next > v {
		next = v + 1
	}
	return next
}

// updateMouse feeds the pointer to the controller: press grabs a handle,
// motion with the button down drags it and the wheel zooms.
func (a *App) updateMouse() {
	pos := rl.GetMousePosition()
	px, py := float64(pos.X), float64(pos.Y)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseLeftButton):
		a.Ctrl.Press(px, py)
	case rl.IsMouseButtonDown(rl.MouseLeftButton):
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			a.Ctrl.Drag(px, py)
		}
	default:
		a.Ctrl.Move(px, py)
	}

	if wheel := rl.GetMouseWheelMove(); wheel > 0 {
		a.Ctrl.Do(control.ActionZoomIn)
	} else if wheel < 0 {
		a.Ctrl.Do(control.ActionZoomOut)
	}
}

// step advances one frame and uploads the field to the texture.
func (a *App) step() {
	report, err := a.Sim.Frame(a.img)
	if err != nil {
		a.err = err
		a.quit = true
		return
	}
	rl.UpdateTexture(a.FieldTex, a.pixels())
	a.Running = a.Sim.Running()
	if !a.Running {
		return
	}
	a.report = report
	if report.Anomaly {
		a.anomaly++
	}

	a.Telemetry = append(a.Telemetry, a.Sim.Universe().Energy())
	if len(a.Telemetry) > a.MaxHistory {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else if a.InConfig {
		a.drawConfig()
	} else {
		a.drawSim()
		if a.ShowHUD {
			a.DrawHUD()
		}
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	a.drawText("orbisim", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s  %s", a.Config.Arrangement, a.Sim.Strategy()), 150, 34, 16, ColText)

	a.DrawTelemetry()

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, a.width-130, 30, 16, col)

	u := a.Sim.Universe()
	px, py := u.Momentum()
	lines := []string{
		fmt.Sprintf("t %.3f  step %d", a.Sim.Time(), a.Sim.Steps()),
		fmt.Sprintf("n %d / %d", u.Len(), u.Cap()),
		fmt.Sprintf("p (%.2e, %.2e)", px, py),
		fmt.Sprintf("q %.4f", u.TotalCharge()),
		fmt.Sprintf("solver %d it  %.1e", a.report.Iterations, a.report.Residual),
		fmt.Sprintf("zoom %d", a.Sim.Viewport().Zoom),
	}
	if a.anomaly > 0 {
		lines = append(lines, fmt.Sprintf("anomalies %d", a.anomaly))
	}
	for i, line := range lines {
		a.drawText(line, 30, 70+i*20, 14, ColText)
	}

	a.drawText("[SPACE] PAUSE  [B/G/H] FIELD  [P] PATHS  [TAB] HUD  [ESC] MENU  [Q] QUIT", 30, a.height-30, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), a.width-90, a.height-30, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("orbisim", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	limit := 18
	startIdx := 0
	if a.Selected >= limit {
		startIdx = a.Selected - limit + 1
	}

	y := 160
	for i := startIdx; i < len(a.Presets) && i < startIdx+limit; i++ {
		name := a.Presets[i].arrangement + " / " + a.Presets[i].name
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, a.height-40, 14, ColTextDim)
}

func (a *App) drawConfig() {
	a.drawText("orbisim", 50, 50, 40, ColTextDim)
	a.drawText("configure", 240, 65, 20, ColSelect)
	a.drawText(fmt.Sprintf("Preset: %s", a.Config.Arrangement), 50, 110, 16, ColAccent)

	y := 180
	for i, key := range a.ParamKeys {
		val := a.Params[key]
		if i == a.ParamSel {
			a.drawText(fmt.Sprintf("> %-15s %g", key, val), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %-15s %g", key, val), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: ADJUST  SHIFT: FASTER  ENTER: RUN  ESC: BACK", 50, a.height-40, 14, ColTextDim)
}
