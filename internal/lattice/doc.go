// Package lattice builds square-lattice tight-binding devices with
// semi-infinite leads and implements [spectral.Device] on them.
//
// A device is described by a [Shape] on an integer grid, a set of [Params]
// and any number of [Lead] strips attached to the left or right edge.
// [Builder.Finalize] produces an immutable [System]:
//
//   - the closed Hamiltonian is stored as a [CSR] matrix
//   - leads enter through analytic hard-wall self-energies
//   - scattering states are solved with a dense LU factorization per energy
//
// # Example
//
//	sys, err := lattice.NewBuilder(20, 10, lattice.Rectangle(20, 10), lattice.DefaultParams()).
//		AttachLead(lattice.Lead{Name: "L", Side: lattice.Left, Width: 10}).
//		AttachLead(lattice.Lead{Name: "R", Side: lattice.Right, Width: 10}).
//		Finalize()
//	if err != nil {
//		return err
//	}
//	dos, err := spectral.DOS(ctx, sys, energies)
package lattice
