package spectral_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spectra/internal/spectral"
)

var _ = Describe("Inversion", func() {
	var (
		energies []float64
		idos     []float64
	)

	BeforeEach(func() {
		energies = []float64{0, 1, 2}
		idos = []float64{0, 0.2, 0.5}
	})

	Describe("EnergyToDensity", func() {
		It("returns the density of the first energy at or above the query", func() {
			Expect(spectral.EnergyToDensity(idos, energies, 1)).To(Equal(0.2))
			Expect(spectral.EnergyToDensity(idos, energies, 1.2)).To(Equal(0.5))
			Expect(spectral.EnergyToDensity(idos, energies, -4)).To(Equal(0.0))
		})

		It("fails past the last energy", func() {
			_, err := spectral.EnergyToDensity(idos, energies, 5)
			Expect(err).To(MatchError(spectral.ErrOutOfRange))
		})
	})

	Describe("DensityToEnergy", func() {
		It("picks the leftmost energy without interpolating", func() {
			idos := []float64{0, 1, 2, 3}
			energies := []float64{0, 1, 2, 3}
			Expect(spectral.DensityToEnergy(idos, energies, 1.5)).To(Equal(2.0))
			Expect(spectral.DensityToEnergy(idos, energies, 1)).To(Equal(1.0))
		})

		It("fails past the largest density", func() {
			_, err := spectral.DensityToEnergy(idos, energies, 0.51)
			Expect(err).To(MatchError(spectral.ErrOutOfRange))
		})

		It("resolves plateaus to their first energy", func() {
			idos := []float64{0, 1, 1, 1, 2}
			energies := []float64{0, 1, 2, 3, 4}
			Expect(spectral.DensityToEnergy(idos, energies, 1)).To(Equal(1.0))
		})
	})

	It("rejects tables of unequal length", func() {
		_, err := spectral.EnergyToDensity(idos, energies[:2], 0)
		Expect(err).To(MatchError(spectral.ErrLengthMismatch))

		_, err = spectral.DensityToEnergy(nil, nil, 0)
		Expect(err).To(MatchError(spectral.ErrOutOfRange))
	})

	DescribeTable("round trips within one table step",
		func(e float64) {
			energies := make([]float64, 41)
			idos := make([]float64, 41)
			for i := range energies {
				energies[i] = -1 + 0.05*float64(i)
				idos[i] = 0.1*float64(i) + 0.002*float64(i*i)
			}

			n, err := spectral.EnergyToDensity(idos, energies, e)
			Expect(err).NotTo(HaveOccurred())
			back, err := spectral.DensityToEnergy(idos, energies, n)
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(BeNumerically("~", e, 0.05+1e-12))
		},
		Entry("lower edge", -1.0),
		Entry("on a sample", 0.0),
		Entry("between samples", 0.37),
		Entry("upper edge", 1.0),
	)

	Describe("Table", func() {
		It("validates and inverts", func() {
			t, err := spectral.NewTable(energies, idos)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Len()).To(Equal(3))

			lo, hi := t.Bounds()
			Expect(lo).To(Equal(0.0))
			Expect(hi).To(Equal(2.0))
			Expect(t.Lookup(0.5)).To(Equal(0.2))

			inv, err := t.Invert()
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Lookup(0.3)).To(Equal(2.0))

			_, err = inv.Lookup(0.6)
			Expect(err).To(MatchError(spectral.ErrOutOfRange))
		})

		It("copies its inputs", func() {
			t, err := spectral.NewTable(energies, idos)
			Expect(err).NotTo(HaveOccurred())
			idos[1] = 9
			Expect(t.Lookup(1)).To(Equal(0.2))
		})

		It("rejects unsorted keys", func() {
			_, err := spectral.NewTable([]float64{0, 2, 1}, []float64{0, 1, 2})
			Expect(err).To(MatchError(spectral.ErrUnsorted))

			_, err = spectral.NewTable(nil, nil)
			Expect(err).To(MatchError(spectral.ErrEmptyRange))
		})

		It("rejects non-finite keys", func() {
			_, err := spectral.NewTable([]float64{0, math.NaN(), 1}, []float64{0, 1, 2})
			Expect(err).To(MatchError(spectral.ErrUnsorted))

			_, err = spectral.NewTable([]float64{0, 1, math.Inf(1)}, []float64{0, 1, 2})
			Expect(err).To(MatchError(spectral.ErrUnsorted))
		})

		It("builds from an IDOS result", func() {
			res := &spectral.IDOSResult{IDOS: []float64{0, 1, 2}, Energies: []float64{-1, 0, 1}}
			et, err := spectral.EnergyTable(res)
			Expect(err).NotTo(HaveOccurred())
			Expect(et.Lookup(0)).To(Equal(1.0))

			dt, err := spectral.DensityTable(res)
			Expect(err).NotTo(HaveOccurred())
			Expect(dt.Lookup(1.5)).To(Equal(1.0))
		})
	})
})
