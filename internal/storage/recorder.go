package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/universe"
)

// Recorder streams one frame record per observed step to a CSV file. It is a
// sim.Observer for interactive sessions where no Result is collected.
type Recorder struct {
	file          *os.File
	every         int
	step          int
	headerWritten bool
	err           error
}

// NewRecorder creates path and records every n-th step.
func NewRecorder(path string, every int) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	if every <= 0 {
		every = 1
	}
	return &Recorder{file: f, every: every}, nil
}

func (r *Recorder) OnStep(u *universe.Universe, t float64, report sim.StepReport) {
	r.step++
	if r.err != nil || r.step%r.every != 0 {
		return
	}

	px, py := u.Momentum()
	ke, pe := u.KineticEnergy(), u.PotentialEnergy()
	records := []sim.FrameRecord{{
		Step:       r.step,
		Time:       t,
		Particles:  u.Len(),
		Kinetic:    ke,
		Potential:  pe,
		Energy:     ke + pe,
		MomentumX:  px,
		MomentumY:  py,
		Charge:     u.TotalCharge(),
		Iterations: report.Iterations,
		Residual:   report.Residual,
		Anomaly:    report.Anomaly,
	}}

	if !r.headerWritten {
		r.err = gocsv.Marshal(records, r.file)
		r.headerWritten = true
	} else {
		r.err = gocsv.MarshalWithoutHeaders(records, r.file)
	}
}

// Close flushes the file and reports the first write error, if any.
func (r *Recorder) Close() error {
	if err := r.file.Close(); err != nil && r.err == nil {
		r.err = err
	}
	return r.err
}
