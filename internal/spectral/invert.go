package spectral

import (
	"fmt"
	"math"
)

// EnergyToDensity returns the integrated density of the first table energy
// at or above energy. No interpolation is done.
func EnergyToDensity(idos, energies []float64, energy float64) (float64, error) {
	return lookup(energies, idos, energy)
}

// DensityToEnergy returns the first table energy whose integrated density
// is at or above density. idos must be non-decreasing.
func DensityToEnergy(idos, energies []float64, density float64) (float64, error) {
	return lookup(idos, energies, density)
}

func lookup(keys, values []float64, x float64) (float64, error) {
	if len(keys) != len(values) {
		return 0, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	i := Search(keys, x)
	if i == NotFound {
		if len(keys) == 0 {
			return 0, fmt.Errorf("%w: empty table", ErrOutOfRange)
		}
		return 0, fmt.Errorf("%w: %g above table maximum %g", ErrOutOfRange, x, keys[len(keys)-1])
	}
	return values[i], nil
}

// Table is a validated (keys, values) pair with ascending keys.
type Table struct {
	keys, values []float64
}

// NewTable copies keys and values. Keys must be finite and non-decreasing.
func NewTable(keys, values []float64) (*Table, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values))
	}
	if len(keys) == 0 {
		return nil, ErrEmptyRange
	}
	for i, k := range keys {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return nil, fmt.Errorf("%w: keys[%d]=%g is not finite", ErrUnsorted, i, k)
		}
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] < keys[i-1] {
			return nil, fmt.Errorf("%w: keys[%d]=%g < keys[%d]=%g", ErrUnsorted, i, keys[i], i-1, keys[i-1])
		}
	}
	return &Table{
		keys:   append([]float64(nil), keys...),
		values: append([]float64(nil), values...),
	}, nil
}

// EnergyTable maps energy to integrated density.
func EnergyTable(r *IDOSResult) (*Table, error) {
	return NewTable(r.Energies, r.IDOS)
}

// DensityTable maps integrated density to energy.
func DensityTable(r *IDOSResult) (*Table, error) {
	return NewTable(r.IDOS, r.Energies)
}

func (t *Table) Lookup(x float64) (float64, error) {
	return lookup(t.keys, t.values, x)
}

// Invert swaps keys and values. It fails if the values are not ascending.
func (t *Table) Invert() (*Table, error) {
	return NewTable(t.values, t.keys)
}

func (t *Table) Len() int { return len(t.keys) }

func (t *Table) Bounds() (lo, hi float64) {
	return t.keys[0], t.keys[len(t.keys)-1]
}
