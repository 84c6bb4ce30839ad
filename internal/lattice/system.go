package lattice

import (
	"fmt"
	"math"

	"github.com/san-kum/spectra/internal/kpm"
	"github.com/san-kum/spectra/internal/spectral"
)

type attachedLead struct {
	Lead
	// sites are the system indices touching the lead, ordered by row.
	sites []int
}

// System is a finalized tight-binding device with leads. It is immutable
// and safe for concurrent use.
type System struct {
	sites  []Site
	index  map[Site]int
	h      *CSR
	leads  []attachedLead
	params Params
	area   float64
	kpm    kpm.Config
}

var _ spectral.Device = (*System)(nil)

func (s *System) Area() float64 { return s.area }

func (s *System) LeadCount() int { return len(s.leads) }

func (s *System) NumSites() int { return len(s.sites) }

func (s *System) Params() Params { return s.params }

// Sites returns a copy of the site list in Hamiltonian order.
func (s *System) Sites() []Site {
	return append([]Site(nil), s.sites...)
}

func (s *System) Leads() []Lead {
	out := make([]Lead, len(s.leads))
	for i, l := range s.leads {
		out[i] = l.Lead
	}
	return out
}

func (s *System) Hamiltonian() *CSR { return s.h }

// Bounds returns an interval containing the spectrum of the closed
// Hamiltonian and the bands of its leads. Each site is bounded as if it
// had the full square-lattice coordination of 4.
func (s *System) Bounds() (lo, hi float64) {
	lo, hi = s.h.Gershgorin()
	center := s.params.bandCenter()
	minDiag, maxDiag := center, center
	for i := range s.sites {
		d := s.h.At(i, i)
		minDiag = math.Min(minDiag, d)
		maxDiag = math.Max(maxDiag, d)
	}
	r := 4 * s.params.T
	return math.Min(lo, minDiag-r), math.Max(hi, maxDiag+r)
}

// Density sums |psi_i|² over all sites.
func (s *System) Density(mode []complex128) float64 {
	var d float64
	for _, c := range mode {
		d += real(c)*real(c) + imag(c)*imag(c)
	}
	return d
}

// SpectralEstimator returns a fresh KPM estimator over the closed
// Hamiltonian.
func (s *System) SpectralEstimator() (spectral.SpectralEstimator, error) {
	lo, hi := s.Bounds()
	est, err := kpm.NewEstimator(s.h, lo, hi, s.kpm)
	if err != nil {
		return nil, fmt.Errorf("build estimator: %w", err)
	}
	return est, nil
}

func (s *System) String() string {
	return fmt.Sprintf("System{sites=%d, leads=%d, area=%g, t=%g, mu=%g, disorder=%g}",
		len(s.sites), len(s.leads), s.area, s.params.T, s.params.Mu, s.params.Disorder)
}
