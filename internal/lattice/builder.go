package lattice

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/spectra/internal/kpm"
)

type Site struct {
	X, Y int
}

// Shape reports whether grid point (x, y) belongs to the system.
type Shape func(x, y int) bool

// Rectangle is the full w x h grid.
func Rectangle(w, h int) Shape {
	return func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h
	}
}

// Builder collects a shape, Hamiltonian parameters and leads, and produces
// an immutable System.
type Builder struct {
	width, height int
	shape         Shape
	params        Params
	leads         []Lead
	area          float64
	kpm           kpm.Config
}

func NewBuilder(width, height int, shape Shape, params Params) *Builder {
	return &Builder{
		width:  width,
		height: height,
		shape:  shape,
		params: params,
		kpm:    kpm.DefaultConfig(),
	}
}

func (b *Builder) AttachLead(l Lead) *Builder {
	b.leads = append(b.leads, l)
	return b
}

// SetArea overrides the normalization area. By default the area is the
// number of sites.
func (b *Builder) SetArea(area float64) *Builder {
	b.area = area
	return b
}

// SetKPM sets the estimator configuration used by SpectralEstimator.
func (b *Builder) SetKPM(cfg kpm.Config) *Builder {
	b.kpm = cfg
	return b
}

func (b *Builder) Finalize() (*System, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, b.width, b.height)
	}
	if err := b.params.Validate(); err != nil {
		return nil, err
	}

	s := &System{
		params: b.params,
		index:  make(map[Site]int),
		kpm:    b.kpm,
	}
	for x := 0; x < b.width; x++ {
		for y := 0; y < b.height; y++ {
			if b.shape(x, y) {
				s.index[Site{x, y}] = len(s.sites)
				s.sites = append(s.sites, Site{x, y})
			}
		}
	}
	if len(s.sites) == 0 {
		return nil, ErrEmptySystem
	}

	s.area = b.area
	if s.area <= 0 {
		s.area = float64(len(s.sites))
	}

	s.h = b.hamiltonian(s)

	for i, l := range b.leads {
		iface, err := b.interfaceSites(s, l)
		if err != nil {
			return nil, fmt.Errorf("lead %d (%s): %w", i, l.Name, err)
		}
		s.leads = append(s.leads, attachedLead{Lead: l, sites: iface})
	}
	return s, nil
}

func (b *Builder) hamiltonian(s *System) *CSR {
	p := b.params
	rng := rand.New(rand.NewSource(p.Seed))

	entries := make([]entry, 0, 5*len(s.sites))
	for i, site := range s.sites {
		onsite := p.bandCenter()
		if p.Disorder > 0 {
			onsite += p.Disorder * (rng.Float64() - 0.5)
		}
		entries = append(entries, entry{i, i, onsite})

		for _, nb := range []Site{{site.X + 1, site.Y}, {site.X, site.Y + 1}} {
			j, ok := s.index[nb]
			if !ok {
				continue
			}
			entries = append(entries, entry{i, j, -p.T}, entry{j, i, -p.T})
		}
	}
	return newCSR(len(s.sites), entries)
}

func (b *Builder) interfaceSites(s *System, l Lead) ([]int, error) {
	if l.Width <= 0 || l.Y0 < 0 || l.Y0+l.Width > b.height {
		return nil, fmt.Errorf("%w: rows %d..%d", ErrInvalidLead, l.Y0, l.Y0+l.Width-1)
	}

	var x int
	switch l.Side {
	case Left:
		x = 0
	case Right:
		x = b.width - 1
	default:
		return nil, fmt.Errorf("%w: side %v", ErrInvalidLead, l.Side)
	}

	sites := make([]int, l.Width)
	for j := range sites {
		idx, ok := s.index[Site{x, l.Y0 + j}]
		if !ok {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrLeadDetached, x, l.Y0+j)
		}
		sites[j] = idx
	}
	return sites, nil
}
