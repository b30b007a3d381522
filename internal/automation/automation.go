package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/experiment"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/storage"
)

// Scenario defines a scripted simulation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. It starts from the named
// preset, or from the default config when Preset is empty, and overrides
// whatever fields are set.
type ScenarioStep struct {
	Arrangement string             `yaml:"arrangement"`
	Preset      string             `yaml:"preset"`
	Integrator  string             `yaml:"integrator"`
	Strategy    string             `yaml:"strategy"`
	Dt          float64            `yaml:"dt"`
	Steps       int                `yaml:"steps"`
	Seed        int64              `yaml:"seed"`
	Params      map[string]float64 `yaml:"params"`
	SaveAs      string             `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config resolves the step into a full configuration.
func (s ScenarioStep) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		arrangement := s.Arrangement
		if arrangement == "" {
			arrangement = cfg.Arrangement
		}
		cfg = config.GetPreset(arrangement, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", arrangement, s.Preset)
		}
	} else if s.Arrangement != "" {
		cfg.Arrangement = s.Arrangement
	}

	if s.Integrator != "" {
		cfg.Integrator = s.Integrator
	}
	if s.Strategy != "" {
		cfg.Strategy = s.Strategy
	}
	if s.Dt != 0 {
		cfg.Dt = s.Dt
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	for k, v := range s.Params {
		if err := cfg.SetParam(k, v); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// RunScenario executes all steps in a scenario. Steps with SaveAs set are
// saved to store, when it is not nil, and the run ids are logged.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *slog.Logger) ([]*sim.Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]*sim.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := step.Config()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "arrangement", cfg.Arrangement, "integrator", cfg.Integrator)

		exp, err := experiment.New(cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, result)

		if step.SaveAs != "" && store != nil {
			id, err := store.Save(cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Info("saved", "name", step.SaveAs, "run", id)
		}
	}

	return results, nil
}

// ParameterSweep runs a base configuration across a range of values of one
// parameter from config.ParamNames.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	StepsTaken  int
	Anomalies   int
	EnergyDrift float64
	MaxEnergy   float64
	MinEnergy   float64
	Elapsed     time.Duration
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *sweep.Base
		if err := cfg.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp, err := experiment.New(&cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		start := time.Now()
		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		minE, maxE := energyRange(result.Frames)
		results = append(results, SweepResult{
			ParamValue:  paramVal,
			StepsTaken:  result.StepsTaken,
			Anomalies:   result.Anomalies,
			EnergyDrift: result.EnergyDrift,
			MaxEnergy:   maxE,
			MinEnergy:   minE,
			Elapsed:     time.Since(start),
		})

		logger.Info("sweep", "point", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}

func energyRange(frames []sim.FrameRecord) (minE, maxE float64) {
	if len(frames) == 0 {
		return 0, 0
	}
	minE, maxE = frames[0].Energy, frames[0].Energy
	for _, f := range frames {
		minE = math.Min(minE, f.Energy)
		maxE = math.Max(maxE, f.Energy)
	}
	return minE, maxE
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Base *config.Config
	// Perturbation is the largest displacement added to each coordinate of
	// every initial position.
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID     int
	EnergyDrift float64
	Anomalies   int
	Stable      bool // Did the run stay finite and bounded?
}

// RunMonteCarlo runs the base configuration NumTrials times with the initial
// positions randomly perturbed.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *slog.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		exp, err := experiment.New(cfg.Base, logger)
		if err != nil {
			return nil, err
		}
		s := exp.GetSimulator()
		u := s.Universe()
		for k := 0; k < u.Len(); k++ {
			u.Move(k,
				u.Sx[k]+(rng.Float64()-0.5)*2*cfg.Perturbation,
				u.Sy[k]+(rng.Float64()-0.5)*2*cfg.Perturbation)
		}

		result, err := exp.Run(ctx)
		if err != nil && ctx.Err() != nil {
			return nil, err
		}

		stable := err == nil && len(result.Errors) == 0 && u.Valid()
		for k := 0; stable && k < u.Len(); k++ {
			if math.Abs(u.Sx[k]) > 1e6 || math.Abs(u.Sy[k]) > 1e6 {
				stable = false
			}
		}

		r := MonteCarloResult{TrialID: trial, Stable: stable}
		if result != nil {
			r.EnergyDrift = result.EnergyDrift
			r.Anomalies = result.Anomalies
		}
		results = append(results, r)

		if (trial+1)%10 == 0 {
			logger.Info("monte carlo", "trials", trial+1, "of", cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
