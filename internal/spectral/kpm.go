package spectral

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/spectra/internal/kpm"
)

// DOSKPM estimates the DOS on the estimator's native grid. A fresh
// estimator is built per call. When the requested resolution needs more
// moments than the estimator allows, the result is returned with Degraded
// set and a warning is logged.
func DOSKPM(dev Device, resolution float64, opts ...Option) (*KPMResult, error) {
	o := buildOptions(opts)

	if !(resolution > 0) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidResolution, resolution)
	}
	area := dev.Area()
	if !(area > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidArea, area)
	}

	est, err := dev.SpectralEstimator()
	if err != nil {
		return nil, solverError(math.NaN(), -1, err)
	}

	res := &KPMResult{Resolution: resolution}
	if err := est.AddMoments(resolution); err != nil {
		switch {
		case errors.Is(err, kpm.ErrCannotRemoveMoments):
			o.logger.Debug("kpm expansion already finer than requested",
				"resolution", resolution, "moments", est.Moments())
		case errors.Is(err, kpm.ErrMomentLimit):
			res.Degraded = true
			o.logger.Warn("kpm resolution not reached",
				"resolution", resolution, "moments", est.Moments(), "err", err)
		default:
			return nil, solverError(math.NaN(), -1, err)
		}
	}

	energies, densities := est.Spectrum()
	dos := make([]float64, len(densities))
	for i, d := range densities {
		dos[i] = d / area
	}

	res.DOS = dos
	res.Energies = energies
	res.Moments = est.Moments()

	o.logger.Debug("kpm dos", "moments", res.Moments, "samples", len(energies), "degraded", res.Degraded)
	return res, nil
}
