// Package kpm estimates spectral densities with the kernel polynomial method.
//
// An [Estimator] expands the density of states of a real symmetric
// [Operator] in Chebyshev polynomials:
//
//   - moments are stochastic traces over random-phase vectors
//   - the Jackson kernel damps Gibbs oscillations
//   - the density is reconstructed on 2M Chebyshev nodes
//
// # Example
//
//	est, _ := kpm.NewEstimator(op, lo, hi, kpm.DefaultConfig())
//	if err := est.AddMoments(0.01); errors.Is(err, kpm.ErrMomentLimit) {
//	    // fewer moments than the resolution needs
//	}
//	energies, densities := est.Spectrum()
//
// Densities integrate to the operator dimension. An Estimator keeps the
// recursion state of every vector, so moments can be added incrementally,
// and is NOT safe for concurrent use.
package kpm
