package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/sim"
)

const (
	metadataFile  = "metadata.json"
	framesFile    = "frames.csv"
	particlesFile = "particles.csv"
	configFile    = "config.yaml"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Arrangement string             `json:"arrangement"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Particles   int                `json:"particles"`
	Integrator  string             `json:"integrator"`
	Strategy    string             `json:"strategy"`
	Anomalies   int                `json:"anomalies"`
	EnergyDrift float64            `json:"energy_drift"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a run directory holding metadata.json, config.yaml,
// frames.csv and, when the result carries snapshots, particles.csv.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Arrangement, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	particles := 0
	if len(result.Frames) > 0 {
		particles = result.Frames[0].Particles
	}
	meta := RunMetadata{
		ID:          runID,
		Arrangement: cfg.Arrangement,
		Timestamp:   now,
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Steps:       result.StepsTaken,
		Particles:   particles,
		Integrator:  cfg.Integrator,
		Strategy:    cfg.Strategy,
		Anomalies:   result.Anomalies,
		EnergyDrift: result.EnergyDrift,
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("writing metadata: %w", err)
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), &result.Frames); err != nil {
		return "", fmt.Errorf("writing frames: %w", err)
	}
	if len(result.Particles) > 0 {
		if err := writeCSV(filepath.Join(runDir, particlesFile), &result.Particles); err != nil {
			return "", fmt.Errorf("writing particles: %w", err)
		}
	}

	return runID, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, records interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.MarshalFile(records, f)
}

// List returns the metadata of every run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadConfig returns the configuration a run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadFrames(runID string) ([]sim.FrameRecord, error) {
	var frames []sim.FrameRecord
	if err := readCSV(filepath.Join(s.baseDir, runID, framesFile), &frames); err != nil {
		return nil, err
	}
	return frames, nil
}

// LoadParticles returns the particle snapshots of a run, or none if the run
// was saved without them.
func (s *Store) LoadParticles(runID string) ([]sim.ParticleRecord, error) {
	var particles []sim.ParticleRecord
	err := readCSV(filepath.Join(s.baseDir, runID, particlesFile), &particles)
	if os.IsNotExist(err) {
		return []sim.ParticleRecord{}, nil
	}
	if err != nil {
		return nil, err
	}
	return particles, nil
}

func readCSV(path string, out interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.UnmarshalFile(f, out)
}
