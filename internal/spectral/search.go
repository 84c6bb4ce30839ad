package spectral

import "sort"

// NotFound is returned by Search when every element is below the query.
const NotFound = -1

// Search returns the smallest index i with s[i] >= x in an ascending
// slice, or NotFound if there is none.
func Search(s []float64, x float64) int {
	i := sort.SearchFloat64s(s, x)
	if i == len(s) {
		return NotFound
	}
	return i
}
