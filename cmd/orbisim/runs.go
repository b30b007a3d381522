package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbisim/internal/analysis"
	"github.com/san-kum/orbisim/internal/config"
	"github.com/san-kum/orbisim/internal/experiment"
	"github.com/san-kum/orbisim/internal/sim"
	"github.com/san-kum/orbisim/internal/storage"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tARRANGEMENT\tTIME\tN\tSTEPS\tDT\tINTEG\tFIELD\tANOMALIES\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%s\t%s\t%d\t%.2e\n",
			run.ID,
			run.Arrangement,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Steps,
			run.Dt,
			run.Integrator,
			run.Strategy,
			run.Anomalies,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("arrangement: %s\n", meta.Arrangement)
	fmt.Printf("samples: %d\n\n", len(frames))

	for _, name := range column {
		data, err := analysis.Series(frames, name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs step"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 4 {
		return fmt.Errorf("no data")
	}
	name := "kinetic"
	if len(column) > 0 {
		name = column[0]
	}
	data, err := analysis.Series(frames, name)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("arrangement: %s\n\n", meta.Arrangement)

	n := 1
	for n < len(data) {
		n *= 2
	}
	padded := make([]float64, n)
	copy(padded, data)

	ps := analysis.PowerSpectrum(padded)
	plotData := ps[:len(ps)/2]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+name+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, analysis.SampleInterval(frames))
	fmt.Printf("dominant frequency: %.4f\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.4f\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	result := &sim.Result{
		Frames:      frames,
		Metrics:     meta.Metrics,
		StepsTaken:  meta.Steps,
		Anomalies:   meta.Anomalies,
		EnergyDrift: meta.EnergyDrift,
	}
	return storage.ExportJSON(os.Stdout, cfg, result)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return gocsv.Marshal(frames, os.Stdout)
}

func listPresets(cmd *cobra.Command, args []string) error {
	arrangements := experiment.NewRegistry().ListArrangements()
	if len(args) > 0 {
		arrangements = args[:1]
	}

	for _, a := range arrangements {
		presets := config.ListPresets(a)
		if len(presets) == 0 {
			if len(args) > 0 {
				fmt.Printf("no presets for arrangement: %s\n", a)
			}
			continue
		}
		fmt.Printf("presets for %s:\n", a)
		for _, p := range presets {
			cfg := config.GetPreset(a, p)
			fmt.Printf("  %-10s %-10s %-10s dt=%g steps=%d\n", p, cfg.Integrator, cfg.Strategy, cfg.Dt, cfg.Steps)
		}
	}
	return nil
}
