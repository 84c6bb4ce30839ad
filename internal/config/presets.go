package config

import (
	"sort"

	"github.com/san-kum/spectra/internal/kpm"
	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/templates"
)

var Presets = map[string]map[string]*Config{
	"strip_2t": {
		"clean": {
			Template:      "strip_2t",
			Geometry:      templates.Geometry{LxLeg: 40, LyLeg: 10},
			Hamiltonian:   lattice.Params{T: 1},
			Energies:      EnergyConfig{Min: 0, Max: 2, Num: 80},
			Mode:          ModeDirect,
			Workers:       4,
			TargetDensity: 0.02,
		},
		"disordered": {
			Template:      "strip_2t",
			Geometry:      templates.Geometry{LxLeg: 40, LyLeg: 10},
			Hamiltonian:   lattice.Params{T: 1, Disorder: 1.5, Seed: 1},
			Energies:      EnergyConfig{Min: 0, Max: 2, Num: 80},
			Mode:          ModeDirect,
			Workers:       4,
			TargetDensity: 0.02,
		},
	},
	"hbar_4t": {
		"small": {
			Template:      "hbar_4t",
			Geometry:      templates.Scaled(12),
			Hamiltonian:   lattice.Params{T: 1},
			Energies:      EnergyConfig{Min: 0, Max: 1, Num: 40},
			Mode:          ModeDirect,
			Workers:       1,
			TargetDensity: 0.01,
		},
		"benchmark": {
			Template:      "hbar_4t",
			Geometry:      templates.Scaled(50),
			Hamiltonian:   lattice.Params{T: 1},
			Energies:      EnergyConfig{Min: 0, Max: 0.5, Num: 50},
			Mode:          ModeKPM,
			Workers:       1,
			TargetDensity: 0.01,
			KPM:           KPMConfig{Vectors: kpm.DefaultVectors, MaxMoments: kpm.DefaultMaxMoments},
		},
		"doped": {
			Template:      "hbar_4t",
			Geometry:      templates.Scaled(30),
			Hamiltonian:   lattice.Params{T: 1, Mu: 0.2},
			Energies:      EnergyConfig{Min: -0.5, Max: 1, Num: 60},
			Mode:          ModeKPM,
			Workers:       1,
			TargetDensity: 0.02,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(template, preset string) *Config {
	templatePresets, ok := Presets[template]
	if !ok {
		return nil
	}
	cfg, ok := templatePresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(template string) []string {
	templatePresets, ok := Presets[template]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(templatePresets))
	for name := range templatePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
