package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/spectra/internal/spectral"
)

// broadening is the imaginary part of the energy, in units of t. At a lead
// channel threshold E - H - Σ has a zero eigenvalue and the broadening keeps
// it invertible.
const broadening = 1e-9

// scatteringStates holds the factorized retarded Green's function of the
// system at one energy. Modes for every lead share the factorization.
type scatteringStates struct {
	sys    *System
	energy float64
	chans  [][]channel
	lu     *mat.LU
}

// ScatteringStates solves the open system at the given energy. The
// factorization is skipped when no lead has a propagating channel.
func (s *System) ScatteringStates(energy float64) (spectral.ScatteringStates, error) {
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return nil, fmt.Errorf("%w: energy %g", ErrInvalidParams, energy)
	}

	st := &scatteringStates{
		sys:    s,
		energy: energy,
		chans:  make([][]channel, len(s.leads)),
	}
	anyOpen := false
	for i, l := range s.leads {
		st.chans[i] = channels(energy, l.Width, s.params)
		for _, c := range st.chans[i] {
			anyOpen = anyOpen || c.open()
		}
	}
	if !anyOpen {
		return st, nil
	}

	if err := st.factorize(); err != nil {
		return nil, err
	}
	return st, nil
}

// factorize builds E + iη - H - Σ as the real block matrix [[X, -Y], [Y, X]]
// with X + iY the complex operator and LU-factorizes it.
func (st *scatteringStates) factorize() error {
	sys := st.sys
	n := len(sys.sites)
	a := mat.NewDense(2*n, 2*n, nil)
	eta := broadening * sys.params.T

	for i := 0; i < n; i++ {
		cols, vals := sys.h.Row(i)
		for k, j := range cols {
			a.Set(i, j, -vals[k])
			a.Set(n+i, n+j, -vals[k])
		}
		a.Set(i, i, a.At(i, i)+st.energy)
		a.Set(n+i, n+i, a.At(n+i, n+i)+st.energy)
		a.Set(i, n+i, -eta)
		a.Set(n+i, i, eta)
	}

	for li, l := range sys.leads {
		w := len(l.sites)
		sigma := selfEnergy(st.chans[li], sys.params.T)
		for p, i := range l.sites {
			for q, j := range l.sites {
				re, im := real(sigma[p*w+q]), imag(sigma[p*w+q])
				a.Set(i, j, a.At(i, j)-re)
				a.Set(n+i, n+j, a.At(n+i, n+j)-re)
				a.Set(i, n+j, a.At(i, n+j)+im)
				a.Set(n+i, j, a.At(n+i, j)-im)
			}
		}
	}

	var lu mat.LU
	lu.Factorize(a)
	if math.IsInf(lu.Cond(), 1) {
		return fmt.Errorf("%w at E=%g", ErrSingular, st.energy)
	}
	st.lu = &lu
	return nil
}

// Modes returns psi_n = sqrt(v_n) G chi_n for every open channel of the
// lead. A lead without open channels yields no modes.
func (st *scatteringStates) Modes(lead int) ([][]complex128, error) {
	if lead < 0 || lead >= len(st.chans) {
		return nil, fmt.Errorf("%w: %d of %d", ErrLeadIndex, lead, len(st.chans))
	}

	var open []channel
	for _, c := range st.chans[lead] {
		if c.open() {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		return nil, nil
	}

	n := len(st.sys.sites)
	iface := st.sys.leads[lead].sites
	b := mat.NewDense(2*n, len(open), nil)
	for k, c := range open {
		for p, i := range iface {
			b.Set(i, k, c.chi[p])
		}
	}

	var x mat.Dense
	if err := st.lu.SolveTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("solve lead %d at E=%g: %w", lead, st.energy, err)
	}

	modes := make([][]complex128, len(open))
	for k, c := range open {
		sv := math.Sqrt(c.v)
		psi := make([]complex128, n)
		for i := range psi {
			psi[i] = complex(sv*x.At(i, k), sv*x.At(n+i, k))
		}
		modes[k] = psi
	}
	return modes, nil
}
