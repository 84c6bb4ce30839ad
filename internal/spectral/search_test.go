package spectral

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	s := []float64{0, 1, 1, 2, 5}

	tests := []struct {
		x    float64
		want int
	}{
		{-3, 0},
		{0, 0},
		{0.5, 1},
		{1, 1},
		{1.5, 3},
		{5, 4},
		{5.0001, NotFound},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Search(s, tt.x), "x=%g", tt.x)
	}

	assert.Equal(t, NotFound, Search(nil, 0))
}

func TestSearchProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		s := make([]float64, 1+rng.Intn(20))
		for i := range s {
			s[i] = float64(rng.Intn(10))
		}
		sort.Float64s(s)
		x := float64(rng.Intn(12)) - 1 + 0.5*float64(rng.Intn(2))

		i := Search(s, x)
		if x > s[len(s)-1] {
			assert.Equal(t, NotFound, i)
			continue
		}
		require.NotEqual(t, NotFound, i)
		assert.GreaterOrEqual(t, s[i], x)
		if i > 0 {
			assert.Less(t, s[i-1], x)
		}
	}
}

func TestCumTrapz(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	assert.Equal(t, []float64{0, 1, 2, 3}, CumTrapz([]float64{1, 1, 1, 1}, x))
	assert.Equal(t, []float64{0, 0.5, 2, 4.5}, CumTrapz([]float64{0, 1, 2, 3}, x))
	assert.Empty(t, CumTrapz(nil, nil))
	assert.Panics(t, func() { CumTrapz([]float64{1}, x) })
}

func TestCumTrapzNonDecreasing(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	x := make([]float64, 50)
	y := make([]float64, 50)
	for i := range x {
		if i > 0 {
			x[i] = x[i-1] + rng.Float64()
		}
		y[i] = rng.Float64() * 4
	}

	out := CumTrapz(y, x)
	assert.Equal(t, 0.0, out[0])
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i], out[i-1])
	}
}

func TestResolution(t *testing.T) {
	r, err := Resolution([]float64{0, 0.5, 1})
	require.NoError(t, err)
	assert.InDelta(t, 5.0/3, r, 1e-12)

	r, err = Resolution([]float64{-1, 3, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, r, 1e-12)

	_, err = Resolution(nil)
	assert.ErrorIs(t, err, ErrEmptyRange)

	_, err = Resolution([]float64{2, 2})
	assert.ErrorIs(t, err, ErrDegenerateRange)
}

func TestAlignWindow(t *testing.T) {
	native := []float64{-1, -0.5, 0, 0.5, 1, 1.5}

	window, start, err := alignWindow(native, -0.2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, 1}, window)
	assert.Equal(t, 2, start)

	_, _, err = alignWindow(native, -2, 1)
	assert.ErrorIs(t, err, ErrInsufficientCoverage)

	_, _, err = alignWindow(native, 0, 2)
	assert.ErrorIs(t, err, ErrInsufficientCoverage)

	_, _, err = alignWindow(native, 0.1, 0.2)
	assert.ErrorIs(t, err, ErrInsufficientCoverage)

	_, _, err = alignWindow(nil, 0, 1)
	assert.ErrorIs(t, err, ErrInsufficientCoverage)
}

func TestSolverErrorMessage(t *testing.T) {
	err := solverError(0.5, 1, ErrNoLeads)
	assert.ErrorIs(t, err, ErrSolverFailure)
	assert.ErrorIs(t, err, ErrNoLeads)
	assert.Contains(t, err.Error(), "E=0.5 lead 1")

	var se *SolverError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Lead)
}
