package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbisim/internal/dynamo"
)

const (
	DefaultDt          = 0.005
	DefaultSteps       = 1000
	DefaultSampleEvery = 10
	DefaultCapacity    = 1000
	DefaultCount       = 50
	DefaultLatticeSize = 31
	DefaultWidth       = 768
	DefaultHeight      = 768
	DefaultTheta       = 0.25
	DefaultPatchSize   = 32
	DefaultNearFactor  = 8
)

type Config struct {
	Arrangement string          `yaml:"arrangement"`
	Integrator  string          `yaml:"integrator"`
	Strategy    string          `yaml:"strategy"`
	Dt          float64         `yaml:"dt"`
	Steps       int             `yaml:"steps"`
	SampleEvery int             `yaml:"sample_every"`
	Seed        int64           `yaml:"seed"`
	Capacity    int             `yaml:"capacity"`
	Particles   ParticlesConfig `yaml:"particles"`
	Solver      SolverConfig    `yaml:"solver"`
	Field       FieldConfig     `yaml:"field"`
	View        ViewConfig      `yaml:"view"`
}

type ParticlesConfig struct {
	Count       int              `yaml:"count"`
	LatticeSize int              `yaml:"lattice_size"`
	Custom      []ParticleConfig `yaml:"custom,omitempty"`
}

type ParticleConfig struct {
	Mass   float64 `yaml:"mass"`
	Charge float64 `yaml:"charge"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
}

type SolverConfig struct {
	MaxIterations     int     `yaml:"max_iterations"`
	Tolerance         float64 `yaml:"tolerance"`
	AnomalyFloor      float64 `yaml:"anomaly_floor"`
	ParallelThreshold int     `yaml:"parallel_threshold"`
}

type FieldConfig struct {
	PatchSize   int     `yaml:"patch_size"`
	Theta       float64 `yaml:"theta"`
	NearFactor  float64 `yaml:"near_factor"`
	MinDistance float64 `yaml:"min_distance"`
}

type ViewConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Zoom   int `yaml:"zoom"`
	// Center puts the universe origin in the middle of the window.
	Center bool `yaml:"center"`
}

func DefaultConfig() *Config {
	return &Config{
		Arrangement: "dipole",
		Integrator:  "greenspan",
		Strategy:    "bilinear",
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Capacity:    DefaultCapacity,
		Particles: ParticlesConfig{
			Count:       DefaultCount,
			LatticeSize: DefaultLatticeSize,
		},
		Solver: SolverConfig{
			MaxIterations:     16,
			AnomalyFloor:      1e-9,
			ParallelThreshold: 64,
		},
		Field: FieldConfig{
			PatchSize:   DefaultPatchSize,
			Theta:       DefaultTheta,
			NearFactor:  DefaultNearFactor,
			MinDistance: 1e-9,
		},
		View: ViewConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the numeric ranges. Names of arrangements, integrators and
// strategies are resolved by the packages that own them.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"dt", c.Dt},
		{"tolerance", c.Solver.Tolerance},
		{"anomaly_floor", c.Solver.AnomalyFloor},
		{"theta", c.Field.Theta},
		{"near_factor", c.Field.NearFactor},
		{"min_distance", c.Field.MinDistance},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", dynamo.ErrInvalidConfig, f.name, f.value)
		}
	}
	for i, p := range c.Particles.Custom {
		for _, v := range []float64{p.Mass, p.Charge, p.X, p.Y, p.VX, p.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: custom particle %d has a non-finite value", dynamo.ErrInvalidConfig, i+1)
			}
		}
	}

	switch {
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %f", dynamo.ErrInvalidConfig, c.Dt)
	case c.Steps <= 0:
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, c.Steps)
	case c.SampleEvery < 0:
		return fmt.Errorf("%w: sample_every must not be negative, got %d", dynamo.ErrInvalidConfig, c.SampleEvery)
	case c.Capacity < 0:
		return fmt.Errorf("%w: capacity must not be negative, got %d", dynamo.ErrInvalidConfig, c.Capacity)
	case c.Particles.Count < 0:
		return fmt.Errorf("%w: particle count must not be negative, got %d", dynamo.ErrInvalidConfig, c.Particles.Count)
	case c.Solver.MaxIterations < 0 || c.Solver.MaxIterations > 16:
		return fmt.Errorf("%w: max_iterations must be in [0, 16], got %d", dynamo.ErrInvalidConfig, c.Solver.MaxIterations)
	case c.Solver.Tolerance < 0:
		return fmt.Errorf("%w: tolerance must not be negative, got %g", dynamo.ErrInvalidConfig, c.Solver.Tolerance)
	case c.Solver.AnomalyFloor < 0:
		return fmt.Errorf("%w: anomaly_floor must not be negative, got %g", dynamo.ErrInvalidConfig, c.Solver.AnomalyFloor)
	case c.Field.Theta <= 0:
		// a very small theta already descends to every leaf
		return fmt.Errorf("%w: theta must be positive, got %g", dynamo.ErrInvalidConfig, c.Field.Theta)
	case c.Field.PatchSize < 0:
		return fmt.Errorf("%w: patch_size must not be negative, got %d", dynamo.ErrInvalidConfig, c.Field.PatchSize)
	case c.Field.NearFactor < 0:
		return fmt.Errorf("%w: near_factor must not be negative, got %g", dynamo.ErrInvalidConfig, c.Field.NearFactor)
	case c.Field.MinDistance < 0:
		return fmt.Errorf("%w: min_distance must not be negative, got %g", dynamo.ErrInvalidConfig, c.Field.MinDistance)
	case c.View.Width < 0 || c.View.Height < 0:
		return fmt.Errorf("%w: view size must not be negative, got %dx%d", dynamo.ErrInvalidConfig, c.View.Width, c.View.Height)
	}
	return nil
}
