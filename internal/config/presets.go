package config

import "sort"

var Presets = map[string]map[string]*Config{
	"dipole": {
		"orbit": {
			Arrangement: "dipole", Integrator: "greenspan", Strategy: "bilinear", Dt: 0.005, Steps: 1000,
		},
		"long": {
			Arrangement: "dipole", Integrator: "greenspan", Strategy: "barneshut", Dt: 0.005, Steps: 20000,
			SampleEvery: 20,
		},
		"leapfrog": {
			Arrangement: "dipole", Integrator: "leapfrog", Strategy: "bilinear", Dt: 0.005, Steps: 1000,
		},
	},
	"lattice": {
		"small": {
			Arrangement: "lattice", Integrator: "greenspan", Strategy: "barneshut", Dt: 0.005, Steps: 200,
			Particles: ParticlesConfig{LatticeSize: 11},
		},
		"full": {
			Arrangement: "lattice", Integrator: "greenspan", Strategy: "barneshut", Dt: 0.005, Steps: 200,
			Particles: ParticlesConfig{LatticeSize: 31},
		},
	},
	"random": {
		"sparse": {
			Arrangement: "random", Integrator: "greenspan", Strategy: "bilinear", Dt: 0.005, Steps: 500,
			Seed: 1, Particles: ParticlesConfig{Count: 50},
		},
		"dense": {
			Arrangement: "random", Integrator: "greenspan", Strategy: "barneshut", Dt: 0.002, Steps: 200,
			Seed: 1, Particles: ParticlesConfig{Count: 1000},
		},
	},
	"cloud": {
		"patches": {
			Arrangement: "cloud", Integrator: "greenspan", Strategy: "barneshut", Dt: 0.002, Steps: 300,
			Seed: 7, Particles: ParticlesConfig{Count: 400},
		},
	},
}

// GetPreset returns a copy of the named preset layered over DefaultConfig.
func GetPreset(arrangement, preset string) *Config {
	arrangementPresets, ok := Presets[arrangement]
	if !ok {
		return nil
	}
	p, ok := arrangementPresets[preset]
	if !ok {
		return nil
	}
	return merge(DefaultConfig(), p)
}

// ListPresets returns the preset names of an arrangement in sorted order.
func ListPresets(arrangement string) []string {
	arrangementPresets, ok := Presets[arrangement]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(arrangementPresets))
	for name := range arrangementPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// merge overlays the non-zero top-level and particle fields of p onto base.
func merge(base, p *Config) *Config {
	if p.Arrangement != "" {
		base.Arrangement = p.Arrangement
	}
	if p.Integrator != "" {
		base.Integrator = p.Integrator
	}
	if p.Strategy != "" {
		base.Strategy = p.Strategy
	}
	if p.Dt != 0 {
		base.Dt = p.Dt
	}
	if p.Steps != 0 {
		base.Steps = p.Steps
	}
	if p.SampleEvery != 0 {
		base.SampleEvery = p.SampleEvery
	}
	if p.Seed != 0 {
		base.Seed = p.Seed
	}
	if p.Particles.Count != 0 {
		base.Particles.Count = p.Particles.Count
	}
	if p.Particles.LatticeSize != 0 {
		base.Particles.LatticeSize = p.Particles.LatticeSize
	}
	return base
}
