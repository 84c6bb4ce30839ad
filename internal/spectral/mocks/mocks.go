// Package mocks provides testify mocks of the spectral collaborator
// interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/san-kum/spectra/internal/spectral"
)

// ---------------------------------------------------------------------------
// Device
// ---------------------------------------------------------------------------

type Device struct{ mock.Mock }

var _ spectral.Device = (*Device)(nil)

func (d *Device) Area() float64  { return d.Called().Get(0).(float64) }
func (d *Device) LeadCount() int { return d.Called().Int(0) }

func (d *Device) ScatteringStates(energy float64) (spectral.ScatteringStates, error) {
	ret := d.Called(energy)
	var s spectral.ScatteringStates
	if ret.Get(0) != nil {
		s = ret.Get(0).(spectral.ScatteringStates)
	}
	return s, ret.Error(1)
}

func (d *Device) Density(mode []complex128) float64 {
	return d.Called(mode).Get(0).(float64)
}

func (d *Device) SpectralEstimator() (spectral.SpectralEstimator, error) {
	ret := d.Called()
	var e spectral.SpectralEstimator
	if ret.Get(0) != nil {
		e = ret.Get(0).(spectral.SpectralEstimator)
	}
	return e, ret.Error(1)
}

// ---------------------------------------------------------------------------
// ScatteringStates
// ---------------------------------------------------------------------------

type ScatteringStates struct{ mock.Mock }

var _ spectral.ScatteringStates = (*ScatteringStates)(nil)

func (s *ScatteringStates) Modes(lead int) ([][]complex128, error) {
	ret := s.Called(lead)
	var m [][]complex128
	if ret.Get(0) != nil {
		m = ret.Get(0).([][]complex128)
	}
	return m, ret.Error(1)
}

// ---------------------------------------------------------------------------
// SpectralEstimator
// ---------------------------------------------------------------------------

type SpectralEstimator struct{ mock.Mock }

var _ spectral.SpectralEstimator = (*SpectralEstimator)(nil)

func (e *SpectralEstimator) AddMoments(resolution float64) error {
	return e.Called(resolution).Error(0)
}

func (e *SpectralEstimator) Moments() int { return e.Called().Int(0) }

func (e *SpectralEstimator) Spectrum() (energies, densities []float64) {
	ret := e.Called()
	return ret.Get(0).([]float64), ret.Get(1).([]float64)
}
