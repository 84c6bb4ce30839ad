package spectral

import "gonum.org/v1/gonum/floats"

// OversamplingFactor scales the requested sample spacing into the
// resolution handed to the moment-expansion engine.
const OversamplingFactor = 5

// Resolution derives an advisory KPM resolution from a requested range:
// (max - min) * OversamplingFactor / len(energies).
func Resolution(energies []float64) (float64, error) {
	if len(energies) == 0 {
		return 0, ErrEmptyRange
	}
	span := floats.Max(energies) - floats.Min(energies)
	if span == 0 {
		return 0, ErrDegenerateRange
	}
	return span * OversamplingFactor / float64(len(energies)), nil
}
