package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/storage"
)

const scenarioYAML = `
name: dipole-check
description: compare integrators on the dipole
steps:
  - preset: orbit
    arrangement: dipole
    steps: 50
    save_as: greenspan
  - arrangement: dipole
    integrator: leapfrog
    dt: 0.002
    steps: 40
    params:
      theta: 0.5
`

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "dipole-check" || len(sc.Steps) != 2 {
		t.Fatalf("got %q with %d steps", sc.Name, len(sc.Steps))
	}

	cfg, err := sc.Steps[1].Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Integrator != "leapfrog" || cfg.Dt != 0.002 || cfg.Steps != 40 || cfg.Field.Theta != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStepConfig_UnknownPreset(t *testing.T) {
	if _, err := (ScenarioStep{Arrangement: "dipole", Preset: "nope"}).Config(); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := (ScenarioStep{Params: map[string]float64{"gravity": 1}}).Config(); err == nil {
		t.Error("expected error for unknown parameter")
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}

	results, err := RunScenario(context.Background(), sc, store, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].StepsTaken != 50 || results[1].StepsTaken != 40 {
		t.Errorf("steps taken = %d, %d", results[0].StepsTaken, results[1].StepsTaken)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Errorf("saved %d runs, want 1", len(runs))
	}
}

func TestRunSweep(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 30
	sweep := &ParameterSweep{Base: base, ParamName: "dt", ParamMin: 0.001, ParamMax: 0.004, NumSteps: 4}

	results, err := RunSweep(context.Background(), sweep, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if results[0].ParamValue != 0.001 || results[3].ParamValue != 0.004 {
		t.Errorf("param range = %g..%g", results[0].ParamValue, results[3].ParamValue)
	}
	for _, r := range results {
		if r.StepsTaken != 30 {
			t.Errorf("dt=%g took %d steps", r.ParamValue, r.StepsTaken)
		}
		if r.MinEnergy > r.MaxEnergy {
			t.Errorf("dt=%g: energy range inverted", r.ParamValue)
		}
	}
	if base.Dt != config.DefaultConfig().Dt {
		t.Error("sweep modified the base config")
	}

	if _, err := RunSweep(context.Background(), &ParameterSweep{Base: base, ParamName: "dt"}, nil); err == nil {
		t.Error("expected error for empty sweep")
	}
}

func TestRunMonteCarlo(t *testing.T) {
	base := config.DefaultConfig()
	base.Steps = 20

	results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{
		Base:         base,
		Perturbation: 0.01,
		NumTrials:    3,
		Seed:         7,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	stable, unstable := MonteCarloStats(results)
	if stable != 3 || unstable != 0 {
		t.Errorf("stable=%d unstable=%d, want 3 and 0", stable, unstable)
	}
}
