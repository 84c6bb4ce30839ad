package spectral

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfRange means a query lies beyond the table; a finer or wider
	// energy range with more states is needed.
	ErrOutOfRange           = errors.New("spectral: out of range (need more eigenstates)")
	ErrSolverFailure        = errors.New("spectral: solver failure")
	ErrNoLeads              = errors.New("spectral: device has no leads")
	ErrEmptyRange           = errors.New("spectral: empty energy range")
	ErrDegenerateRange      = errors.New("spectral: energy range has zero width")
	ErrUnsorted             = errors.New("spectral: keys are not ascending")
	ErrLengthMismatch       = errors.New("spectral: length mismatch")
	ErrInsufficientCoverage = errors.New("spectral: native grid does not cover requested range")
	ErrInvalidArea          = errors.New("spectral: device area must be positive")
	ErrInvalidResolution    = errors.New("spectral: resolution must be positive")
)

// SolverError reports a failed scattering or estimation solve. Energy is
// NaN when the failure is not tied to a sample and Lead is -1 when it is
// not tied to a lead.
type SolverError struct {
	Energy float64
	Lead   int
	Err    error
}

func (e *SolverError) Error() string {
	switch {
	case math.IsNaN(e.Energy):
		return fmt.Sprintf("spectral: solver failed: %v", e.Err)
	case e.Lead < 0:
		return fmt.Sprintf("spectral: solver failed at E=%g: %v", e.Energy, e.Err)
	}
	return fmt.Sprintf("spectral: solver failed at E=%g lead %d: %v", e.Energy, e.Lead, e.Err)
}

func (e *SolverError) Unwrap() error { return e.Err }

func (e *SolverError) Is(target error) bool { return target == ErrSolverFailure }

func solverError(energy float64, lead int, err error) error {
	return &SolverError{Energy: energy, Lead: lead, Err: err}
}
