package config

import (
	"fmt"
	"math"

	"github.com/san-kum/orbisim/internal/dynamo"
)

// ParamNames lists the settings reachable through GetParams and SetParam,
// in display order.
var ParamNames = []string{
	"dt", "steps", "seed", "count", "lattice_size",
	"max_iterations", "tolerance", "theta", "patch_size", "near_factor",
}

// GetParams returns the tunable numeric settings by name.
func (c *Config) GetParams() map[string]float64 {
	return map[string]float64{
		"dt":             c.Dt,
		"steps":          float64(c.Steps),
		"seed":           float64(c.Seed),
		"count":          float64(c.Particles.Count),
		"lattice_size":   float64(c.Particles.LatticeSize),
		"max_iterations": float64(c.Solver.MaxIterations),
		"tolerance":      c.Solver.Tolerance,
		"theta":          c.Field.Theta,
		"patch_size":     float64(c.Field.PatchSize),
		"near_factor":    c.Field.NearFactor,
	}
}

// SetParam sets one tunable setting. Integer settings are rounded. The
// result is not validated; call Validate before use.
func (c *Config) SetParam(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be finite", dynamo.ErrInvalidConfig, name)
	}
	n := int(math.Round(value))
	switch name {
	case "dt":
		c.Dt = value
	case "steps":
		c.Steps = n
	case "seed":
		c.Seed = int64(n)
	case "count":
		c.Particles.Count = n
	case "lattice_size":
		c.Particles.LatticeSize = n
	case "max_iterations":
		c.Solver.MaxIterations = n
	case "tolerance":
		c.Solver.Tolerance = value
	case "theta":
		c.Field.Theta = value
	case "patch_size":
		c.Field.PatchSize = n
	case "near_factor":
		c.Field.NearFactor = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrInvalidConfig, name)
	}
	return nil
}
