// Package sweep repeats IDOS computations over a Hamiltonian parameter or
// over disorder realizations and inverts each one at a target density.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/experiment"
	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/templates"
)

// ParameterSweep varies one Hamiltonian parameter over NumSteps evenly
// spaced values.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// Point is the outcome at one parameter value. Err holds a per-point
// failure such as the target density lying outside the computed IDOS.
type Point struct {
	ParamValue float64
	Energy     float64
	MaxIDOS    float64
	Degraded   bool
	Err        error
}

func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps == 1 {
		return []float64{s.ParamMin}
	}
	vals := make([]float64, s.NumSteps)
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	for i := range vals {
		vals[i] = s.ParamMin + float64(i)*step
	}
	return vals
}

// RunSweep computes, for each parameter value, the energy at which the
// IDOS of base reaches base.TargetDensity. Configuration and device errors
// abort the sweep; inversion and solver errors are recorded per point.
func RunSweep(ctx context.Context, base *config.Config, sw *ParameterSweep, registry *templates.Registry, logger *slog.Logger) ([]Point, error) {
	if sw.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sw.NumSteps)
	}
	probe := base.Hamiltonian
	if err := probe.SetParam(sw.ParamName, sw.ParamMin); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	values := sw.Values()
	points := make([]Point, 0, len(values))
	for i, v := range values {
		cfg := *base
		if err := cfg.Hamiltonian.SetParam(sw.ParamName, v); err != nil {
			return points, err
		}

		p, err := solvePoint(ctx, &cfg, registry, logger)
		if err != nil {
			return points, fmt.Errorf("%s=%g: %w", sw.ParamName, v, err)
		}
		p.ParamValue = v
		points = append(points, p)

		logger.Info("sweep point",
			"step", fmt.Sprintf("%d/%d", i+1, len(values)), "param", sw.ParamName, "value", v, "energy", p.Energy, "err", p.Err)
	}
	return points, nil
}

// DisorderAverage holds the spread of the target-density energy over
// disorder realizations.
type DisorderAverage struct {
	Points []Point
	Mean   float64
	StdDev float64
	Failed int
}

// RunDisorderAverage repeats the inversion for NumTrials consecutive seeds
// starting at base.Hamiltonian.Seed.
func RunDisorderAverage(ctx context.Context, base *config.Config, numTrials int, registry *templates.Registry, logger *slog.Logger) (*DisorderAverage, error) {
	if numTrials < 1 {
		return nil, fmt.Errorf("need at least one trial, got %d", numTrials)
	}
	if base.Hamiltonian.Disorder == 0 {
		return nil, fmt.Errorf("%w: disorder is zero, every trial would be identical", lattice.ErrInvalidParams)
	}

	sw := &ParameterSweep{
		ParamName: "seed",
		ParamMin:  float64(base.Hamiltonian.Seed),
		ParamMax:  float64(base.Hamiltonian.Seed) + float64(numTrials-1),
		NumSteps:  numTrials,
	}
	points, err := RunSweep(ctx, base, sw, registry, logger)
	if err != nil {
		return nil, err
	}

	avg := &DisorderAverage{Points: points}
	energies := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Err != nil {
			avg.Failed++
			continue
		}
		energies = append(energies, p.Energy)
	}
	switch len(energies) {
	case 0:
	case 1:
		avg.Mean = energies[0]
	default:
		avg.Mean, avg.StdDev = stat.MeanStdDev(energies, nil)
	}
	return avg, nil
}

func solvePoint(ctx context.Context, cfg *config.Config, registry *templates.Registry, logger *slog.Logger) (Point, error) {
	exp := experiment.New(cfg, registry, logger)
	if err := exp.Setup(); err != nil {
		return Point{}, err
	}

	res, err := exp.Run(ctx)
	switch {
	case errors.Is(err, spectral.ErrSolverFailure), errors.Is(err, spectral.ErrInsufficientCoverage):
		return Point{Err: err}, nil
	case err != nil:
		return Point{}, err
	}

	p := Point{Degraded: res.IDOS.Degraded}
	if n := len(res.IDOS.IDOS); n > 0 {
		p.MaxIDOS = res.IDOS.IDOS[n-1]
	}
	p.Energy, p.Err = spectral.DensityToEnergy(res.IDOS.IDOS, res.IDOS.Energies, cfg.TargetDensity)
	return p, nil
}
