package spectral

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// DOS computes the density of states at each energy from the scattering
// states of every lead: the mode densities are summed and divided by
// Area()*2π. Samples are solved independently; the output has the order of
// energies.
func DOS(ctx context.Context, dev Device, energies []float64, opts ...Option) ([]float64, error) {
	o := buildOptions(opts)

	if dev.LeadCount() == 0 {
		return nil, solverError(math.NaN(), -1, ErrNoLeads)
	}
	area := dev.Area()
	if !(area > 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidArea, area)
	}

	o.logger.Debug("direct dos",
		"samples", len(energies), "leads", dev.LeadCount(), "workers", o.workers)

	dos := make([]float64, len(energies))

	if o.workers == 1 {
		for i, e := range energies {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d, err := sampleDOS(dev, e, area)
			if err != nil {
				return nil, err
			}
			dos[i] = d
			o.notify(i, e, d)
		}
		return dos, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, e := range energies {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d, err := sampleDOS(dev, e, area)
			if err != nil {
				return err
			}
			dos[i] = d
			o.notify(i, e, d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dos, nil
}

func sampleDOS(dev Device, energy, area float64) (float64, error) {
	states, err := dev.ScatteringStates(energy)
	if err != nil {
		return 0, solverError(energy, -1, err)
	}

	total := 0.0
	for lead := 0; lead < dev.LeadCount(); lead++ {
		modes, err := states.Modes(lead)
		if err != nil {
			return 0, solverError(energy, lead, err)
		}
		for _, m := range modes {
			total += dev.Density(m)
		}
	}
	return total / (area * 2 * math.Pi), nil
}

func (o options) notify(i int, energy, dos float64) {
	if o.observer != nil {
		o.observer.OnSample(i, energy, dos)
	}
}
