package lattice

import (
	"math"
	"sort"
)

// CSR is a real square matrix in compressed sparse row form.
type CSR struct {
	n      int
	rowPtr []int
	col    []int
	val    []float64
}

type entry struct {
	i, j int
	v    float64
}

// newCSR assembles an n x n matrix from unordered entries. Duplicate
// positions are summed.
func newCSR(n int, entries []entry) *CSR {
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].i != entries[b].i {
			return entries[a].i < entries[b].i
		}
		return entries[a].j < entries[b].j
	})

	m := &CSR{
		n:      n,
		rowPtr: make([]int, n+1),
		col:    make([]int, 0, len(entries)),
		val:    make([]float64, 0, len(entries)),
	}
	for k, e := range entries {
		if k > 0 && e.i == entries[k-1].i && e.j == entries[k-1].j {
			m.val[len(m.val)-1] += e.v
			continue
		}
		m.col = append(m.col, e.j)
		m.val = append(m.val, e.v)
		m.rowPtr[e.i+1]++
	}
	for i := 0; i < n; i++ {
		m.rowPtr[i+1] += m.rowPtr[i]
	}
	return m
}

func (m *CSR) Dim() int { return m.n }

func (m *CSR) NNZ() int { return len(m.val) }

// MulVec sets dst = M x.
func (m *CSR) MulVec(dst, x []float64) {
	for i := 0; i < m.n; i++ {
		s := 0.0
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			s += m.val[k] * x[m.col[k]]
		}
		dst[i] = s
	}
}

func (m *CSR) At(i, j int) float64 {
	row := m.col[m.rowPtr[i]:m.rowPtr[i+1]]
	k := sort.SearchInts(row, j)
	if k < len(row) && row[k] == j {
		return m.val[m.rowPtr[i]+k]
	}
	return 0
}

// Row returns the stored columns and values of row i. The slices alias
// the matrix.
func (m *CSR) Row(i int) ([]int, []float64) {
	lo, hi := m.rowPtr[i], m.rowPtr[i+1]
	return m.col[lo:hi], m.val[lo:hi]
}

// Gershgorin returns an interval containing every eigenvalue.
func (m *CSR) Gershgorin() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := 0; i < m.n; i++ {
		var d, r float64
		for k := m.rowPtr[i]; k < m.rowPtr[i+1]; k++ {
			if m.col[k] == i {
				d = m.val[k]
			} else {
				r += math.Abs(m.val[k])
			}
		}
		lo = math.Min(lo, d-r)
		hi = math.Max(hi, d+r)
	}
	return lo, hi
}
