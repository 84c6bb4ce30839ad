package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/storage"
	"github.com/san-kum/spectra/internal/templates"
)

// Experiment builds the device described by a config and runs the
// spectral engines on it.
type Experiment struct {
	cfg      *config.Config
	registry *templates.Registry
	logger   *slog.Logger
	device   *lattice.System
}

type Result struct {
	IDOS    *spectral.IDOSResult
	Elapsed time.Duration
	Sites   int
}

func New(cfg *config.Config, registry *templates.Registry, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	return &Experiment{cfg: cfg, registry: registry, logger: logger}
}

// Setup validates the config and finalizes the device.
func (e *Experiment) Setup() error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	sys, err := e.registry.Build(e.cfg.Template, e.cfg.Geometry, e.cfg.Hamiltonian, e.cfg.KPMSettings())
	if err != nil {
		return err
	}
	e.device = sys
	e.logger.Info("device ready",
		"template", e.cfg.Template, "sites", sys.NumSites(), "leads", sys.LeadCount(), "area", sys.Area())
	return nil
}

// Device returns the finalized device, or nil before Setup.
func (e *Experiment) Device() *lattice.System {
	return e.device
}

func (e *Experiment) options(extra []spectral.Option) []spectral.Option {
	opts := []spectral.Option{spectral.WithLogger(e.logger), spectral.WithWorkers(e.cfg.Workers)}
	return append(opts, extra...)
}

// Run computes the IDOS over the configured energy range in the configured
// mode.
func (e *Experiment) Run(ctx context.Context, opts ...spectral.Option) (*Result, error) {
	if e.device == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	res, err := spectral.IDOS(ctx, e.device, e.cfg.EnergyRange(), e.cfg.UseApprox(), e.options(opts)...)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	e.logger.Info("idos done",
		"mode", e.cfg.Mode, "samples", len(res.Energies), "elapsed", elapsed.Round(time.Millisecond))
	return &Result{IDOS: res, Elapsed: elapsed, Sites: e.device.NumSites()}, nil
}

// DOS runs the direct engine over the configured energy range.
func (e *Experiment) DOS(ctx context.Context, opts ...spectral.Option) ([]float64, error) {
	if e.device == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return spectral.DOS(ctx, e.device, e.cfg.EnergyRange(), e.options(opts)...)
}

// KPM runs the moment-expansion engine at the resolution derived from the
// configured energy range.
func (e *Experiment) KPM() (*spectral.KPMResult, error) {
	if e.device == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	res, err := spectral.Resolution(e.cfg.EnergyRange())
	if err != nil {
		return nil, err
	}
	return spectral.DOSKPM(e.device, res, spectral.WithLogger(e.logger))
}

// Metadata describes a result for storage.
func (e *Experiment) Metadata(r *Result) storage.RunMetadata {
	return storage.RunMetadata{
		Template:    e.cfg.Template,
		Mode:        e.cfg.Mode,
		Geometry:    e.cfg.Geometry,
		Hamiltonian: e.cfg.Hamiltonian,
		Sites:       r.Sites,
		Moments:     r.IDOS.Moments,
		Degraded:    r.IDOS.Degraded,
		Elapsed:     r.Elapsed.Seconds(),
	}
}
