package mask

import "math"

// Stats summarises the cells of a grid that hold a given value.
type Stats struct {
	// Count is the number of matching cells.
	Count int `json:"count"`

	// Total is the number of cells in the grid.
	Total int `json:"total"`

	// Coverage is Count/Total as a percentage, rounded to 0.01.
	Coverage float64 `json:"coverage_percent"`

	// Min and Max bound the matching cells (both inclusive), in grid axis
	// order. Both are nil when nothing matches.
	Min []int `json:"min,omitempty"`
	Max []int `json:"max,omitempty"`

	// Centroid is the mean index of the matching cells, rounded to 0.01.
	Centroid []float64 `json:"centroid,omitempty"`
}

// Measure reports where value occurs in g. For a freshly built mask pass
// the painted value (the foreground, or the background when inverted).
func Measure(g *Grid, value float64) *Stats {
	n := len(g.shape)
	st := &Stats{Total: len(g.data)}
	sums := make([]float64, n)
	lo := make([]int, n)
	hi := make([]int, n)

	zero := make([]int, n)
	forEachIndex(zero, g.shape, func(idx []int) {
		if g.data[g.offset(idx)] != value {
			return
		}
		if st.Count == 0 {
			copy(lo, idx)
			copy(hi, idx)
		}
		st.Count++
		for a, v := range idx {
			sums[a] += float64(v)
			if v < lo[a] {
				lo[a] = v
			}
			if v > hi[a] {
				hi[a] = v
			}
		}
	})

	if st.Total > 0 {
		st.Coverage = math.Round(float64(st.Count)/float64(st.Total)*10000) / 100
	}
	if st.Count == 0 {
		return st
	}
	st.Min, st.Max = lo, hi
	st.Centroid = make([]float64, n)
	for a := range sums {
		st.Centroid[a] = math.Round(sums[a]/float64(st.Count)*100) / 100
	}
	return st
}
