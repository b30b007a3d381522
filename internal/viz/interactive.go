package viz

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/experiment"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

var arrangementInfo = map[string]string{
	"dipole":  "two opposite charges in orbit",
	"lattice": "alternating grid at rest",
	"random":  "unit charges scattered at random",
	"cloud":   "noise-signed charge patches",
}

type pickItem struct {
	arrangement, preset string
	cfg                 *config.Config
}

// picker lists every preset and hands the chosen one to a live view.
type picker struct {
	items     []pickItem
	cursor    int
	frameRate int
	logger    *slog.Logger
	live      *Model
	err       error
}

func newPicker(logger *slog.Logger, frameRate int) picker {
	arrangements := make([]string, 0, len(config.Presets))
	for a := range config.Presets {
		arrangements = append(arrangements, a)
	}
	sort.Strings(arrangements)

	items := make([]pickItem, 0)
	for _, a := range arrangements {
		for _, p := range config.ListPresets(a) {
			items = append(items, pickItem{arrangement: a, preset: p, cfg: config.GetPreset(a, p)})
		}
	}
	return picker{items: items, frameRate: frameRate, logger: logger}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m picker) start() (tea.Model, tea.Cmd) {
	if len(m.items) == 0 {
		return m, tea.Quit
	}
	item := m.items[m.cursor]
	exp, err := experiment.New(item.cfg, m.logger)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	live := NewModel(exp.GetSimulator(), item.arrangement+" / "+item.preset, m.frameRate, item.cfg.Seed)
	m.live = &live
	return m, live.Init()
}

func (m picker) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var s strings.Builder
	s.WriteString("\n  " + cyan.Render("orbisim") + dim.Render("  point charges in two dimensions") + "\n\n")
	last := ""
	for i, item := range m.items {
		if item.arrangement != last {
			s.WriteString("  " + yellow.Render(item.arrangement) + dim.Render("  "+arrangementInfo[item.arrangement]) + "\n")
			last = item.arrangement
		}
		line := fmt.Sprintf("%-10s %-10s dt=%-6g steps=%d", item.preset, item.cfg.Integrator, item.cfg.Dt, item.cfg.Steps)
		if i == m.cursor {
			s.WriteString("  " + white.Render("> "+line) + "\n")
		} else {
			s.WriteString("    " + dim.Render(line) + "\n")
		}
	}
	s.WriteString("\n  " + dim.Render("↑↓ select  enter start  q quit") + "\n")
	return s.String()
}

func (m picker) Err() error {
	if m.err != nil {
		return m.err
	}
	if m.live != nil {
		return m.live.Err()
	}
	return nil
}

// RunInteractive shows the preset menu and runs the chosen preset live.
func RunInteractive(logger *slog.Logger, frameRate int) error {
	final, err := tea.NewProgram(newPicker(logger, frameRate), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	return final.(picker).Err()
}
