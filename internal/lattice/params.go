package lattice

import (
	"fmt"
	"math"
	"sort"
)

// Params are the tight-binding parameters of a square-lattice system.
// The onsite energy of a site is 4T + Onsite - Mu plus a disorder term
// drawn uniformly from [-Disorder/2, Disorder/2].
type Params struct {
	T        float64 `yaml:"t" json:"t"`
	Onsite   float64 `yaml:"onsite" json:"onsite"`
	Mu       float64 `yaml:"mu" json:"mu"`
	Disorder float64 `yaml:"disorder" json:"disorder"`
	Seed     int64   `yaml:"seed" json:"seed"`
}

func DefaultParams() Params {
	return Params{T: 1}
}

var paramSetters = map[string]func(*Params, float64){
	"t":        func(p *Params, v float64) { p.T = v },
	"onsite":   func(p *Params, v float64) { p.Onsite = v },
	"mu":       func(p *Params, v float64) { p.Mu = v },
	"disorder": func(p *Params, v float64) { p.Disorder = v },
	"seed":     func(p *Params, v float64) { p.Seed = int64(v) },
}

// SetParam assigns a parameter by name.
func (p *Params) SetParam(name string, v float64) error {
	set, ok := paramSetters[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	set(p, v)
	return nil
}

// ParamNames lists the names accepted by SetParam.
func ParamNames() []string {
	names := make([]string, 0, len(paramSetters))
	for name := range paramSetters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p Params) Validate() error {
	if !(p.T > 0) || math.IsInf(p.T, 0) {
		return fmt.Errorf("%w: hopping t=%g must be positive", ErrInvalidParams, p.T)
	}
	if p.Disorder < 0 || math.IsNaN(p.Disorder) {
		return fmt.Errorf("%w: disorder %g", ErrInvalidParams, p.Disorder)
	}
	if math.IsNaN(p.Onsite) || math.IsNaN(p.Mu) {
		return fmt.Errorf("%w: onsite or mu is NaN", ErrInvalidParams)
	}
	return nil
}

// bandCenter is the clean onsite energy shared by the device and its leads.
func (p Params) bandCenter() float64 {
	return 4*p.T + p.Onsite - p.Mu
}
