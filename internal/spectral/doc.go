// Package spectral computes the density of states (DOS) and the integrated
// density of states (IDOS) of a [Device] with leads, and inverts between
// energy and integrated density.
//
// Two engines produce directly comparable outputs:
//
//   - [DOS] solves the scattering states of every lead at each energy
//   - [DOSKPM] uses a moment-expansion estimator on its own energy grid
//
// [IDOS] integrates either one. In approximate mode the native KPM grid is
// windowed onto the requested range, and the result always carries equal
// length IDOS and energy slices.
//
// Inversion uses [Search], a leftmost lookup that reports [NotFound]
// instead of an append index:
//
//   - [EnergyToDensity] and [DensityToEnergy] work on raw slices
//   - [Table] validates the keys once and supports repeated lookups
//
// Queries past the end of a table fail with [ErrOutOfRange].
//
// # Example
//
//	res, err := spectral.IDOS(ctx, dev, energies, false, spectral.WithWorkers(4))
//	if err != nil {
//		return err
//	}
//	e, err := spectral.DensityToEnergy(res.IDOS, res.Energies, 0.05)
//	if errors.Is(err, spectral.ErrOutOfRange) {
//		// widen the energy range
//	}
package spectral
