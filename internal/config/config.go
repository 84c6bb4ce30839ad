package config

import (
	"errors"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/spectra/internal/kpm"
	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/templates"
)

const (
	DefaultTemplate  = "hbar_4t"
	DefaultSize      = 30
	DefaultEnergyMin = 0.0
	DefaultEnergyMax = 1.0
	DefaultEnergyNum = 50
	DefaultMode      = ModeDirect
	DefaultWorkers   = 1
	DefaultDensity   = 0.01

	ModeDirect = "direct"
	ModeKPM    = "kpm"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Template      string             `yaml:"template"`
	Geometry      templates.Geometry `yaml:"geometry"`
	Hamiltonian   lattice.Params     `yaml:"hamiltonian"`
	Energies      EnergyConfig       `yaml:"energies"`
	Mode          string             `yaml:"mode"`
	Workers       int                `yaml:"workers"`
	KPM           KPMConfig          `yaml:"kpm"`
	TargetDensity float64            `yaml:"target_density"`
}

type EnergyConfig struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	Num int     `yaml:"num"`
}

type KPMConfig struct {
	Vectors    int   `yaml:"vectors"`
	Moments    int   `yaml:"moments"`
	MaxMoments int   `yaml:"max_moments"`
	Seed       int64 `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Template:    DefaultTemplate,
		Geometry:    templates.Scaled(DefaultSize),
		Hamiltonian: lattice.DefaultParams(),
		Energies: EnergyConfig{
			Min: DefaultEnergyMin,
			Max: DefaultEnergyMax,
			Num: DefaultEnergyNum,
		},
		Mode:    DefaultMode,
		Workers: DefaultWorkers,
		KPM: KPMConfig{
			Vectors:    kpm.DefaultVectors,
			Moments:    kpm.DefaultMoments,
			MaxMoments: kpm.DefaultMaxMoments,
		},
		TargetDensity: DefaultDensity,
	}
}

func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto overlays the file at path onto a copy of base. Fields missing
// from the file keep their base values.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnergyRange returns Num evenly spaced energies from Min to Max.
func (c *Config) EnergyRange() []float64 {
	if c.Energies.Num == 1 {
		return []float64{c.Energies.Min}
	}
	return floats.Span(make([]float64, c.Energies.Num), c.Energies.Min, c.Energies.Max)
}

// KPMSettings converts the estimator section, keeping library defaults for
// fields left at zero.
func (c *Config) KPMSettings() kpm.Config {
	k := kpm.DefaultConfig()
	if c.KPM.Vectors > 0 {
		k.NumVectors = c.KPM.Vectors
	}
	if c.KPM.Moments > 0 {
		k.NumMoments = c.KPM.Moments
	}
	if c.KPM.MaxMoments > 0 {
		k.MaxMoments = c.KPM.MaxMoments
	}
	k.Seed = c.KPM.Seed
	return k
}

func (c *Config) UseApprox() bool { return c.Mode == ModeKPM }

func (c *Config) Validate() error {
	switch {
	case c.Template == "":
		return fmt.Errorf("%w: template is empty", ErrInvalidConfig)
	case c.Energies.Num < 1:
		return fmt.Errorf("%w: energies.num %d", ErrInvalidConfig, c.Energies.Num)
	case c.Energies.Num > 1 && c.Energies.Max <= c.Energies.Min:
		return fmt.Errorf("%w: energies.max %g <= energies.min %g", ErrInvalidConfig, c.Energies.Max, c.Energies.Min)
	case c.Mode != ModeDirect && c.Mode != ModeKPM:
		return fmt.Errorf("%w: mode %q (want %s or %s)", ErrInvalidConfig, c.Mode, ModeDirect, ModeKPM)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}
	if err := c.Hamiltonian.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
