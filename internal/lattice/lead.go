package lattice

import "math"

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Lead is a clean semi-infinite strip attached to the left or right edge of
// the grid over rows Y0 .. Y0+Width-1.
type Lead struct {
	Name  string
	Side  Side
	Y0    int
	Width int
}

const (
	// openThreshold is the smallest channel velocity counted as propagating.
	openThreshold = 1e-12

	// thresholdTol is how close, in units of t, |E - eps_n| may come to 2t
	// before channel n is treated as closed.
	thresholdTol = 1e-9
)

// channel is one transverse mode of a lead at a fixed energy.
type channel struct {
	chi []float64
	g   complex128
	// v is the longitudinal velocity; zero for evanescent channels.
	v float64
}

func (c channel) open() bool { return c.v > openThreshold }

// transverseMode returns the n-th hard-wall mode (n = 1..w) of a strip of
// width w.
func transverseMode(n, w int) []float64 {
	chi := make([]float64, w)
	norm := math.Sqrt(2 / float64(w+1))
	for j := range chi {
		chi[j] = norm * math.Sin(float64(n)*math.Pi*float64(j+1)/float64(w+1))
	}
	return chi
}

// channels solves the lead at energy e. The lead shares the clean onsite
// energy of the system and has hopping -t.
func channels(e float64, width int, p Params) []channel {
	t := p.T
	out := make([]channel, width)
	for n := 1; n <= width; n++ {
		eps := p.bandCenter() - 2*t*math.Cos(float64(n)*math.Pi/float64(width+1))
		z := e - eps

		var c channel
		c.chi = transverseMode(n, width)
		if 2*t-math.Abs(z) > thresholdTol*t {
			s := math.Sqrt(4*t*t - z*z)
			c.g = complex(z, -s) / complex(2*t*t, 0)
			c.v = s
		} else {
			// at or just inside the band edge the channel counts as closed
			s := math.Copysign(math.Sqrt(math.Max(z*z-4*t*t, 0)), z)
			c.g = complex((z-s)/(2*t*t), 0)
		}
		out[n-1] = c
	}
	return out
}

// selfEnergy returns the width x width self-energy block of a lead,
// t² Σ_n chi_n g_n chi_nᵀ, in row-major order.
func selfEnergy(chs []channel, t float64) []complex128 {
	w := len(chs)
	sigma := make([]complex128, w*w)
	for _, c := range chs {
		for i := 0; i < w; i++ {
			for j := 0; j < w; j++ {
				sigma[i*w+j] += complex(t*t*c.chi[i]*c.chi[j], 0) * c.g
			}
		}
	}
	return sigma
}
