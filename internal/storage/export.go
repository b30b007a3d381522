package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/sim"
)

type ExportData struct {
	Arrangement string             `json:"arrangement"`
	Integrator  string             `json:"integrator"`
	Strategy    string             `json:"strategy"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Anomalies   int                `json:"anomalies"`
	EnergyDrift float64            `json:"energy_drift"`
	Frames      []sim.FrameRecord  `json:"frames"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes a run summary with its sampled frames to w.
func ExportJSON(w io.Writer, cfg *config.Config, result *sim.Result) error {
	data := ExportData{
		Arrangement: cfg.Arrangement,
		Integrator:  cfg.Integrator,
		Strategy:    cfg.Strategy,
		Dt:          cfg.Dt,
		Steps:       result.StepsTaken,
		Anomalies:   result.Anomalies,
		EnergyDrift: result.EnergyDrift,
		Frames:      result.Frames,
		Metrics:     result.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
