package spectral

// CumTrapz integrates y over x with the trapezoidal rule, returning the
// running integral with out[0] = 0. Mismatched lengths panic.
func CumTrapz(y, x []float64) []float64 {
	if len(y) != len(x) {
		panic("spectral: CumTrapz length mismatch")
	}
	out := make([]float64, len(y))
	for i := 1; i < len(y); i++ {
		out[i] = out[i-1] + 0.5*(y[i]+y[i-1])*(x[i]-x[i-1])
	}
	return out
}
