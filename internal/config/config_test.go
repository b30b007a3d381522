package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbisim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Arrangement != "dipole" {
		t.Errorf("expected arrangement dipole, got %s", cfg.Arrangement)
	}
	if cfg.Dt != 0.005 {
		t.Errorf("expected dt 0.005, got %f", cfg.Dt)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lattice", "small")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Particles.LatticeSize != 11 {
		t.Errorf("expected lattice size 11, got %d", cfg.Particles.LatticeSize)
	}
	if cfg.Field.Theta != DefaultTheta {
		t.Errorf("expected defaults underneath preset, got theta %f", cfg.Field.Theta)
	}

	cfg.Steps = 1
	if again := GetPreset("lattice", "small"); again.Steps == 1 {
		t.Error("preset shared between callers")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("dipole", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "orbit"); cfg != nil {
		t.Error("expected nil for nonexistent arrangement")
	}
}

func TestListPresets(t *testing.T) {
	if presets := ListPresets("random"); len(presets) != 2 {
		t.Errorf("expected 2 presets for random, got %d", len(presets))
	}
	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent arrangement")
	}
}

func TestPresetsValidate(t *testing.T) {
	for arrangement := range Presets {
		for _, name := range ListPresets(arrangement) {
			if err := GetPreset(arrangement, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", arrangement, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative steps", func(c *Config) { c.Steps = -1 }},
		{"too many iterations", func(c *Config) { c.Solver.MaxIterations = 17 }},
		{"negative theta", func(c *Config) { c.Field.Theta = -0.1 }},
		{"zero theta", func(c *Config) { c.Field.Theta = 0 }},
		{"negative width", func(c *Config) { c.View.Width = -5 }},
		{"NaN dt", func(c *Config) { c.Dt = math.NaN() }},
		{"infinite dt", func(c *Config) { c.Dt = math.Inf(1) }},
		{"NaN tolerance", func(c *Config) { c.Solver.Tolerance = math.NaN() }},
		{"NaN theta", func(c *Config) { c.Field.Theta = math.NaN() }},
		{"NaN near factor", func(c *Config) { c.Field.NearFactor = math.NaN() }},
		{"infinite min distance", func(c *Config) { c.Field.MinDistance = math.Inf(1) }},
		{"negative min distance", func(c *Config) { c.Field.MinDistance = -1 }},
		{"infinite custom position", func(c *Config) {
			c.Particles.Custom = []ParticleConfig{{Mass: 1, Charge: 1, X: math.Inf(1)}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_NaNRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	if err := os.WriteFile(path, []byte("dt: .nan\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(cfg.Dt) {
		t.Fatalf("expected NaN dt from yaml, got %v", cfg.Dt)
	}
	if err := cfg.Validate(); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbisim.yaml")
	cfg := DefaultConfig()
	cfg.Arrangement = "custom"
	cfg.Particles.Custom = []ParticleConfig{{Mass: 2, Charge: -1, X: 0.5, VY: 0.1}}

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Arrangement != "custom" || len(loaded.Particles.Custom) != 1 {
		t.Fatalf("unexpected config %+v", loaded)
	}
	if loaded.Particles.Custom[0] != cfg.Particles.Custom[0] {
		t.Errorf("expected %+v, got %+v", cfg.Particles.Custom[0], loaded.Particles.Custom[0])
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("arrangement: cloud\nsteps: 42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Arrangement != "cloud" || loaded.Steps != 42 {
		t.Errorf("file values not applied: %+v", loaded)
	}
	if loaded.Dt != DefaultDt || loaded.Field.PatchSize != DefaultPatchSize {
		t.Errorf("defaults lost: dt %f patch %d", loaded.Dt, loaded.Field.PatchSize)
	}
}

func TestParams(t *testing.T) {
	cfg := DefaultConfig()
	params := cfg.GetParams()
	for _, name := range ParamNames {
		if _, ok := params[name]; !ok {
			t.Errorf("GetParams missing %s", name)
		}
	}

	tests := []struct {
		name  string
		value float64
		check func(*Config) bool
	}{
		{"dt", 0.002, func(c *Config) bool { return c.Dt == 0.002 }},
		{"steps", 99.6, func(c *Config) bool { return c.Steps == 100 }},
		{"count", 12, func(c *Config) bool { return c.Particles.Count == 12 }},
		{"theta", 0.7, func(c *Config) bool { return c.Field.Theta == 0.7 }},
		{"max_iterations", 8, func(c *Config) bool { return c.Solver.MaxIterations == 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			if err := c.SetParam(tt.name, tt.value); err != nil {
				t.Fatal(err)
			}
			if !tt.check(c) {
				t.Errorf("SetParam(%s, %g) not applied", tt.name, tt.value)
			}
			if got := c.GetParams()[tt.name]; tt.name == "dt" && got != tt.value {
				t.Errorf("GetParams()[dt] = %g", got)
			}
		})
	}

	if err := cfg.SetParam("gravity", 1); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("unknown param: got %v", err)
	}
	if err := cfg.SetParam("dt", math.NaN()); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("NaN param: got %v", err)
	}
}
