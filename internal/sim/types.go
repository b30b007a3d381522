package sim

import (
	"github.com/san-kum/orbisim/internal/dynamo"
	"github.com/san-kum/orbisim/internal/universe"
)

type State = dynamo.State

// StepReport describes how one implicit step went.
type StepReport struct {
	Iterations int
	Residual   float64
	Converged  bool
	Anomaly    bool
}

// Stepper advances a universe in place by dt.
type Stepper interface {
	Name() string
	Advance(u *universe.Universe, dt float64) StepReport
}

type Metric interface {
	Name() string
	Observe(u *universe.Universe, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(u *universe.Universe, t float64, report StepReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(u *universe.Universe, t float64, report StepReport)

func (f ObserverFunc) OnStep(u *universe.Universe, t float64, report StepReport) { f(u, t, report) }

type Config struct {
	Dt          float64
	Steps       int
	SampleEvery int
	// ValidateState stops the run at the first NaN or Inf.
	ValidateState bool
	// KeepParticles records a full particle snapshot with every sample.
	KeepParticles bool
}

// FrameRecord is one sampled point of a run.
type FrameRecord struct {
	Step       int     `csv:"step"`
	Time       float64 `csv:"time"`
	Particles  int     `csv:"particles"`
	Kinetic    float64 `csv:"kinetic"`
	Potential  float64 `csv:"potential"`
	Energy     float64 `csv:"energy"`
	MomentumX  float64 `csv:"momentum_x"`
	MomentumY  float64 `csv:"momentum_y"`
	Charge     float64 `csv:"charge"`
	Iterations int     `csv:"iterations"`
	Residual   float64 `csv:"residual"`
	Anomaly    bool    `csv:"anomaly"`
}

// ParticleRecord is one particle in a sampled snapshot.
type ParticleRecord struct {
	Step   int     `csv:"step"`
	Index  int     `csv:"index"`
	Mass   float64 `csv:"mass"`
	Charge float64 `csv:"charge"`
	X      float64 `csv:"x"`
	Y      float64 `csv:"y"`
	Vx     float64 `csv:"vx"`
	Vy     float64 `csv:"vy"`
}

type Result struct {
	Frames      []FrameRecord
	Particles   []ParticleRecord
	Metrics     map[string]float64
	Errors      []error
	StepsTaken  int
	Anomalies   int
	EnergyDrift float64
}
