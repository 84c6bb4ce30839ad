package spectral

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// IDOS integrates the DOS over energies.
//
// In direct mode the DOS is sampled on energies and the result uses them
// unchanged. In approximate mode the KPM engine runs at Resolution(energies)
// and its integral is cut down to the native samples inside
// [min(energies), max(energies)]. The native grid must bracket that
// interval, otherwise ErrInsufficientCoverage is returned.
func IDOS(ctx context.Context, dev Device, energies []float64, useApprox bool, opts ...Option) (*IDOSResult, error) {
	if len(energies) == 0 {
		return nil, ErrEmptyRange
	}

	if !useApprox {
		dos, err := DOS(ctx, dev, energies, opts...)
		if err != nil {
			return nil, err
		}
		return &IDOSResult{
			IDOS:     CumTrapz(dos, energies),
			Energies: append([]float64(nil), energies...),
			DOS:      dos,
		}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := Resolution(energies)
	if err != nil {
		return nil, err
	}
	k, err := DOSKPM(dev, res, opts...)
	if err != nil {
		return nil, err
	}

	idos := CumTrapz(k.DOS, k.Energies)
	window, start, err := alignWindow(k.Energies, floats.Min(energies), floats.Max(energies))
	if err != nil {
		return nil, err
	}
	end := start + len(window)

	return &IDOSResult{
		IDOS:     append([]float64(nil), idos[start:end]...),
		Energies: window,
		DOS:      append([]float64(nil), k.DOS[start:end]...),
		Degraded: k.Degraded,
		Moments:  k.Moments,
	}, nil
}

// alignWindow returns the native energies within [lo, hi] and the index of
// the first one in native.
func alignWindow(native []float64, lo, hi float64) ([]float64, int, error) {
	n := len(native)
	if n == 0 || native[0] > lo || native[n-1] < hi {
		if n == 0 {
			return nil, 0, fmt.Errorf("%w: empty native grid", ErrInsufficientCoverage)
		}
		return nil, 0, fmt.Errorf("%w: native [%g, %g], requested [%g, %g]",
			ErrInsufficientCoverage, native[0], native[n-1], lo, hi)
	}

	var window []float64
	for _, e := range native {
		if e >= lo && e <= hi {
			window = append(window, e)
		}
	}
	if len(window) == 0 {
		return nil, 0, fmt.Errorf("%w: no native sample in [%g, %g]", ErrInsufficientCoverage, lo, hi)
	}

	start := Search(native, window[0])
	if start == NotFound || start+len(window) > n {
		return nil, 0, fmt.Errorf("%w: window of %d samples at %d exceeds native grid of %d",
			ErrInsufficientCoverage, len(window), start, n)
	}
	return window, start, nil
}
