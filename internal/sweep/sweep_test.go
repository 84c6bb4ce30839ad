package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/templates"
)

func baseConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Template = "strip_2t"
	cfg.Geometry = templates.Geometry{LxLeg: 5, LyLeg: 3}
	cfg.Energies = config.EnergyConfig{Min: 1, Max: 2, Num: 11}
	cfg.TargetDensity = 0.001
	return cfg
}

func TestValues(t *testing.T) {
	sw := &ParameterSweep{ParamName: "mu", ParamMin: 0, ParamMax: 1, NumSteps: 5}
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, sw.Values())

	one := &ParameterSweep{ParamName: "mu", ParamMin: 0.3, ParamMax: 1, NumSteps: 1}
	assert.Equal(t, []float64{0.3}, one.Values())
}

func TestRunSweep(t *testing.T) {
	sw := &ParameterSweep{ParamName: "mu", ParamMin: 0, ParamMax: 0.2, NumSteps: 3}
	points, err := RunSweep(context.Background(), baseConfig(), sw, templates.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, points, 3)

	for i, p := range points {
		assert.InDelta(t, 0.1*float64(i), p.ParamValue, 1e-12)
		require.NoError(t, p.Err)
		assert.GreaterOrEqual(t, p.Energy, 1.0)
		assert.LessOrEqual(t, p.Energy, 2.0)
		assert.Greater(t, p.MaxIDOS, 0.0)
	}
}

func TestRunSweepRecordsOutOfRange(t *testing.T) {
	cfg := baseConfig()
	cfg.TargetDensity = 100

	sw := &ParameterSweep{ParamName: "onsite", ParamMin: 0, ParamMax: 0.1, NumSteps: 2}
	points, err := RunSweep(context.Background(), cfg, sw, templates.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, points, 2)
	for _, p := range points {
		assert.ErrorIs(t, p.Err, spectral.ErrOutOfRange)
	}
}

func TestRunSweepRejectsUnknownParam(t *testing.T) {
	sw := &ParameterSweep{ParamName: "phi", NumSteps: 2}
	_, err := RunSweep(context.Background(), baseConfig(), sw, templates.NewRegistry(), nil)
	assert.ErrorIs(t, err, lattice.ErrUnknownParam)

	_, err = RunSweep(context.Background(), baseConfig(), &ParameterSweep{ParamName: "mu"}, templates.NewRegistry(), nil)
	assert.Error(t, err)
}

func TestRunSweepDoesNotMutateBase(t *testing.T) {
	cfg := baseConfig()
	sw := &ParameterSweep{ParamName: "mu", ParamMin: 0.5, ParamMax: 0.5, NumSteps: 1}
	_, err := RunSweep(context.Background(), cfg, sw, templates.NewRegistry(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.Hamiltonian.Mu)
}

func TestDisorderAverage(t *testing.T) {
	cfg := baseConfig()
	_, err := RunDisorderAverage(context.Background(), cfg, 3, templates.NewRegistry(), nil)
	assert.True(t, errors.Is(err, lattice.ErrInvalidParams))

	cfg.Hamiltonian.Disorder = 0.8
	cfg.Hamiltonian.Seed = 10
	avg, err := RunDisorderAverage(context.Background(), cfg, 3, templates.NewRegistry(), nil)
	require.NoError(t, err)
	require.Len(t, avg.Points, 3)
	assert.Equal(t, 12.0, avg.Points[2].ParamValue)
	assert.Zero(t, avg.Failed)
	assert.False(t, math.IsNaN(avg.Mean))
	assert.GreaterOrEqual(t, avg.StdDev, 0.0)
}
