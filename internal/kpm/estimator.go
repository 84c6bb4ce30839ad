package kpm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

const (
	DefaultVectors    = 10
	DefaultMoments    = 100
	DefaultMaxMoments = 8192
	DefaultEps        = 0.05

	// Jackson kernel broadening is about 1.6*a/M for M moments.
	resolutionScale = 1.6
)

// Operator is a real symmetric linear map of dimension Dim.
type Operator interface {
	Dim() int
	MulVec(dst, x []float64)
}

type Config struct {
	NumVectors int
	NumMoments int
	// MaxMoments must be even.
	MaxMoments int
	Seed       int64
	// Eps pads the spectral bounds so the rescaled operator stays inside (-1, 1).
	Eps float64
}

func DefaultConfig() Config {
	return Config{
		NumVectors: DefaultVectors,
		NumMoments: DefaultMoments,
		MaxMoments: DefaultMaxMoments,
		Eps:        DefaultEps,
	}
}

// chain holds the Chebyshev recursion of one random vector.
type chain struct {
	r, prev, cur []float64
}

type Estimator struct {
	op      Operator
	cfg     Config
	a, b    float64
	chains  []chain
	moments []float64
	scratch []float64
}

// NewEstimator prepares an estimator for an operator whose spectrum lies in
// [lo, hi] and computes cfg.NumMoments moments.
func NewEstimator(op Operator, lo, hi float64, cfg Config) (*Estimator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if op.Dim() <= 0 {
		return nil, fmt.Errorf("%w: operator dimension %d", ErrInvalidConfig, op.Dim())
	}
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || hi <= lo {
		return nil, fmt.Errorf("%w: [%g, %g]", ErrInvalidBounds, lo, hi)
	}

	e := &Estimator{
		op:      op,
		cfg:     cfg,
		a:       (hi - lo) / (2 - cfg.Eps),
		b:       (hi + lo) / 2,
		chains:  make([]chain, cfg.NumVectors),
		scratch: make([]float64, op.Dim()),
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	for v := range e.chains {
		r := make([]float64, op.Dim())
		for i := range r {
			if rng.Intn(2) == 0 {
				r[i] = -1
			} else {
				r[i] = 1
			}
		}
		e.chains[v].r = r
	}

	e.extend(evenCeil(cfg.NumMoments))
	return e, nil
}

func (c Config) validate() error {
	switch {
	case c.NumVectors <= 0:
		return fmt.Errorf("%w: %d vectors", ErrInvalidConfig, c.NumVectors)
	case c.NumMoments < 2:
		return fmt.Errorf("%w: %d moments", ErrInvalidConfig, c.NumMoments)
	case c.MaxMoments < c.NumMoments:
		return fmt.Errorf("%w: max moments %d below initial %d", ErrInvalidConfig, c.MaxMoments, c.NumMoments)
	case c.MaxMoments%2 != 0:
		// expansions are always grown to an even count
		return fmt.Errorf("%w: max moments %d is odd", ErrInvalidConfig, c.MaxMoments)
	case c.Eps <= 0 || c.Eps >= 1:
		return fmt.Errorf("%w: eps %g", ErrInvalidConfig, c.Eps)
	}
	return nil
}

// Moments returns the number of moments computed so far.
func (e *Estimator) Moments() int { return len(e.moments) }

// Resolution returns the energy resolution of the current expansion.
func (e *Estimator) Resolution() float64 {
	return resolutionScale * e.a / float64(len(e.moments))
}

// AddMoments extends the expansion until it resolves the given energy
// resolution. Requests beyond MaxMoments are capped and reported with
// ErrMomentLimit; requests below the current count return
// ErrCannotRemoveMoments and change nothing.
func (e *Estimator) AddMoments(resolution float64) error {
	if math.IsNaN(resolution) || math.IsInf(resolution, 0) || resolution <= 0 {
		return fmt.Errorf("%w: %g", ErrInvalidResolution, resolution)
	}

	need := math.Ceil(resolutionScale * e.a / resolution)
	if need > float64(e.cfg.MaxMoments) {
		e.extend(e.cfg.MaxMoments)
		return fmt.Errorf("%w: resolution %g needs %.0f moments, limit %d",
			ErrMomentLimit, resolution, need, e.cfg.MaxMoments)
	}

	n := evenCeil(int(need))
	if n < len(e.moments) {
		return fmt.Errorf("%w: have %d, resolution %g needs %d",
			ErrCannotRemoveMoments, len(e.moments), resolution, n)
	}
	e.extend(n)
	return nil
}

// Spectrum reconstructs the density on 2M Chebyshev nodes. Energies are
// ascending.
func (e *Estimator) Spectrum() (energies, densities []float64) {
	m := len(e.moments)
	np := 2 * m
	g := jackson(m)

	energies = make([]float64, np)
	densities = make([]float64, np)
	for k := 0; k < np; k++ {
		theta := math.Pi * (float64(k) + 0.5) / float64(np)
		s := g[0] * e.moments[0]
		for n := 1; n < m; n++ {
			s += 2 * g[n] * e.moments[n] * math.Cos(float64(n)*theta)
		}

		// k runs from x ~ 1 down to x ~ -1
		j := np - 1 - k
		energies[j] = e.a*math.Cos(theta) + e.b
		densities[j] = s / (math.Pi * math.Sin(theta)) / e.a
	}
	return energies, densities
}

func (e *Estimator) extend(total int) {
	for m := len(e.moments); m < total; m++ {
		sum := 0.0
		for v := range e.chains {
			c := &e.chains[v]
			switch m {
			case 0:
				c.cur = append([]float64(nil), c.r...)
			case 1:
				c.prev = c.cur
				c.cur = make([]float64, len(c.r))
				e.apply(c.cur, c.prev)
			default:
				next := c.prev
				e.apply(e.scratch, c.cur)
				for i := range next {
					next[i] = 2*e.scratch[i] - next[i]
				}
				c.prev, c.cur = c.cur, next
			}
			sum += floats.Dot(c.r, c.cur)
		}
		e.moments = append(e.moments, sum/float64(len(e.chains)))
	}
}

// apply computes dst = (H - b) x / a.
func (e *Estimator) apply(dst, x []float64) {
	e.op.MulVec(dst, x)
	for i := range dst {
		dst[i] = (dst[i] - e.b*x[i]) / e.a
	}
}

func jackson(m int) []float64 {
	g := make([]float64, m)
	q := math.Pi / float64(m+1)
	for n := range g {
		fn := float64(n)
		g[n] = (float64(m-n+1)*math.Cos(q*fn) + math.Sin(q*fn)/math.Tan(q)) / float64(m+1)
	}
	return g
}

func evenCeil(n int) int {
	if n%2 != 0 {
		return n + 1
	}
	return n
}
