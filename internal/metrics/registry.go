package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/orbisim/internal/sim"
)

var constructors = map[string]func() sim.Metric{
	"energy":         func() sim.Metric { return NewEnergy() },
	"energy_drift":   func() sim.Metric { return NewEnergyDrift() },
	"kinetic":        func() sim.Metric { return NewKinetic() },
	"momentum_drift": func() sim.Metric { return NewMomentumDrift() },
	"charge_drift":   func() sim.Metric { return NewChargeDrift() },
	"stability":      func() sim.Metric { return NewStability(100) },
}

// New returns a fresh metric by name.
func New(name string) (sim.Metric, error) {
	fn, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// Standard returns the conservation metrics recorded for every run.
func Standard() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewMomentumDrift(),
		NewChargeDrift(),
		NewKinetic(),
	}
}

func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
