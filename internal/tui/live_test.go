package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

func TestLiveRenderer(t *testing.T) {
	u := universe.New(4)
	universe.Dipole(u)

	var out bytes.Buffer
	r := NewLiveRenderer(&out, "dipole", 10, Viewport(u))
	r.OnStep(u, 0.5, sim.StepReport{Iterations: 3})

	s := out.String()
	if !strings.Contains(s, "dipole") {
		t.Error("missing title")
	}
	if !strings.Contains(s, "+") || !strings.Contains(s, "-") {
		t.Error("charges not drawn")
	}
	if !strings.Contains(s, "iterations=3") {
		t.Error("missing solver report")
	}

	out.Reset()
	r.OnStep(u, 0.6, sim.StepReport{})
	if out.Len() != 0 {
		t.Error("frame not throttled")
	}
}
