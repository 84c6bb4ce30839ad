package templates

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/spectra/internal/kpm"
	"github.com/san-kum/spectra/internal/lattice"
)

var ErrInvalidGeometry = errors.New("templates: invalid geometry")

// Geometry sizes a device in lattice sites. Strips use only the leg
// dimensions.
type Geometry struct {
	LxLeg  int `yaml:"lx_leg" json:"lx_leg"`
	LyLeg  int `yaml:"ly_leg" json:"ly_leg"`
	LxNeck int `yaml:"lx_neck" json:"lx_neck"`
	LyNeck int `yaml:"ly_neck" json:"ly_neck"`
}

// Scaled is the Hall-bar geometry used for size scaling: legs n by n/6
// joined by an n/6 square neck.
func Scaled(n int) Geometry {
	k := max(n/6, 1)
	return Geometry{LxLeg: n, LyLeg: k, LxNeck: k, LyNeck: k}
}

// Constructor lays out a device. The returned builder can still be
// adjusted before Finalize.
type Constructor func(g Geometry, p lattice.Params) (*lattice.Builder, error)

type Template struct {
	Name        string
	Description string
	Leads       []string
	New         Constructor
}

type Registry struct {
	templates map[string]Template
}

func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]Template)}

	r.Register(Template{
		Name:        "strip_2t",
		Description: "rectangular strip with full-width left and right leads",
		Leads:       []string{"L", "R"},
		New:         newStrip,
	})
	r.Register(Template{
		Name:        "hbar_4t",
		Description: "Hall bar: two legs joined by a neck, four leads on the legs",
		Leads:       []string{"BL", "TL", "BR", "TR"},
		New:         newHbar,
	})

	return r
}

func (r *Registry) Register(t Template) {
	r.templates[t.Name] = t
}

func (r *Registry) Get(name string) (Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template: %s (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return t, nil
}

// Build finalizes the named template with the given estimator settings.
func (r *Registry) Build(name string, g Geometry, p lattice.Params, kcfg kpm.Config) (*lattice.System, error) {
	t, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	b, err := t.New(g, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	sys, err := b.SetKPM(kcfg).Finalize()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return sys, nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newStrip(g Geometry, p lattice.Params) (*lattice.Builder, error) {
	lx, ly := g.LxLeg, g.LyLeg
	if lx <= 0 || ly <= 0 {
		return nil, fmt.Errorf("%w: strip %dx%d", ErrInvalidGeometry, lx, ly)
	}
	return lattice.NewBuilder(lx, ly, lattice.Rectangle(lx, ly), p).
		AttachLead(lattice.Lead{Name: "L", Side: lattice.Left, Width: ly}).
		AttachLead(lattice.Lead{Name: "R", Side: lattice.Right, Width: ly}).
		SetArea(float64(lx * ly)), nil
}

// HbarShape is two lx_leg x ly_leg legs stacked vertically and joined by a
// centred lx_neck x ly_neck neck.
func HbarShape(g Geometry) lattice.Shape {
	x0 := g.LxLeg/2 - g.LxNeck/2
	top := g.LyLeg + g.LyNeck
	return func(x, y int) bool {
		inLegs := x >= 0 && x < g.LxLeg &&
			((y >= 0 && y < g.LyLeg) || (y >= top && y < top+g.LyLeg))
		inNeck := x >= x0 && x < x0+g.LxNeck && y >= g.LyLeg && y < top
		return inLegs || inNeck
	}
}

func newHbar(g Geometry, p lattice.Params) (*lattice.Builder, error) {
	if g.LxLeg <= 0 || g.LyLeg <= 0 || g.LxNeck <= 0 || g.LyNeck <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidGeometry, g)
	}
	if g.LxNeck > g.LxLeg {
		return nil, fmt.Errorf("%w: neck %d wider than legs %d", ErrInvalidGeometry, g.LxNeck, g.LxLeg)
	}

	top := g.LyLeg + g.LyNeck
	area := 2*g.LxLeg*g.LyLeg + g.LxNeck*g.LyNeck

	return lattice.NewBuilder(g.LxLeg, 2*g.LyLeg+g.LyNeck, HbarShape(g), p).
		AttachLead(lattice.Lead{Name: "BL", Side: lattice.Left, Y0: 0, Width: g.LyLeg}).
		AttachLead(lattice.Lead{Name: "TL", Side: lattice.Left, Y0: top, Width: g.LyLeg}).
		AttachLead(lattice.Lead{Name: "BR", Side: lattice.Right, Y0: 0, Width: g.LyLeg}).
		AttachLead(lattice.Lead{Name: "TR", Side: lattice.Right, Y0: top, Width: g.LyLeg}).
		SetArea(float64(area)), nil
}
