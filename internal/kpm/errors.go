package kpm

import "errors"

var (
	// ErrMomentLimit is returned when the requested resolution needs more
	// moments than Config.MaxMoments. The estimator keeps the moments it has.
	ErrMomentLimit = errors.New("kpm: moment limit reached")

	// ErrCannotRemoveMoments is returned when a resolution asks for fewer
	// moments than the estimator already holds.
	ErrCannotRemoveMoments = errors.New("kpm: cannot remove moments")

	// ErrInvalidBounds indicates spectral bounds with hi <= lo or non-finite values.
	ErrInvalidBounds = errors.New("kpm: invalid spectral bounds")

	// ErrInvalidConfig indicates non-positive vector or moment counts.
	ErrInvalidConfig = errors.New("kpm: invalid config")

	// ErrInvalidResolution indicates a non-positive or non-finite resolution.
	ErrInvalidResolution = errors.New("kpm: invalid energy resolution")
)
