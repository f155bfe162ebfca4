package mask

import (
	"fmt"
	"math"
	"strings"
)

// Grid is a dense N-dimensional grid of float64 values stored in row-major
// order (last axis fastest).
//
// Grids returned by Build and Apply are owned by the caller. Set exists for
// tests and debugging; the rest of the package never mutates a grid after
// handing it out.
type Grid struct {
	shape   []int
	strides []int
	data    []float64
}

// NewGrid creates a zero-filled grid with the given shape.
// It panics if any extent is negative.
func NewGrid(shape ...int) *Grid {
	n := 1
	for _, s := range shape {
		if s < 0 {
			panic(fmt.Sprintf("mask: negative grid extent in shape %v", shape))
		}
		n *= s
	}
	g := &Grid{
		shape: append([]int(nil), shape...),
		data:  make([]float64, n),
	}
	g.strides = stridesFor(g.shape)
	return g
}

// NewGridFilled creates a grid with every cell set to value.
func NewGridFilled(value float64, shape ...int) *Grid {
	g := NewGrid(shape...)
	if value != 0 {
		g.fill(value)
	}
	return g
}

// NewGridFromData wraps data as a grid of the given shape. The slice is
// used directly, not copied.
func NewGridFromData(shape []int, data []float64) (*Grid, error) {
	n := 1
	for _, s := range shape {
		if s < 0 {
			return nil, fmt.Errorf("negative grid extent in shape %v", shape)
		}
		if s != 0 && n > math.MaxInt/s {
			return nil, fmt.Errorf("shape %v has too many cells", shape)
		}
		n *= s
	}
	if n != len(data) {
		return nil, fmt.Errorf("shape %v needs %d values, got %d", shape, n, len(data))
	}
	return &Grid{
		shape:   append([]int(nil), shape...),
		strides: stridesFor(shape),
		data:    data,
	}, nil
}

func stridesFor(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = stride
		stride *= shape[i]
	}
	return strides
}

// Shape returns a copy of the grid's extents.
func (g *Grid) Shape() []int { return append([]int(nil), g.shape...) }

// Dims returns the number of axes.
func (g *Grid) Dims() int { return len(g.shape) }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.data) }

// Data returns the underlying row-major slice.
func (g *Grid) Data() []float64 { return g.data }

// At returns the value at the given index. It panics if the index has the
// wrong number of components or lies outside the grid.
func (g *Grid) At(idx ...int) float64 {
	return g.data[g.offset(idx)]
}

// Set writes value at idx. Intended for tests and debugging.
func (g *Grid) Set(idx []int, value float64) {
	g.data[g.offset(idx)] = value
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		shape:   append([]int(nil), g.shape...),
		strides: append([]int(nil), g.strides...),
		data:    make([]float64, len(g.data)),
	}
	copy(c.data, g.data)
	return c
}

// Range returns the smallest and largest values in the grid.
// An empty grid reports 0, 0.
func (g *Grid) Range() (lo, hi float64) {
	if len(g.data) == 0 {
		return 0, 0
	}
	lo, hi = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// String formats the grid one row per line; 3D grids print one block per
// index of axis 0 separated by a blank line.
func (g *Grid) String() string {
	var b strings.Builder
	if len(g.shape) == 0 || len(g.data) == 0 {
		return "[]"
	}
	rowLen := g.shape[len(g.shape)-1]
	var block int
	if len(g.shape) == 3 {
		block = g.shape[1] * g.shape[2]
	}
	for start := 0; start < len(g.data); start += rowLen {
		if block > 0 && start > 0 && start%block == 0 {
			b.WriteByte('\n')
		}
		for i, v := range g.data[start : start+rowLen] {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.4g", v)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) fill(value float64) {
	for i := range g.data {
		g.data[i] = value
	}
}

// offset converts a multi-index into a position in data.
func (g *Grid) offset(idx []int) int {
	if len(idx) != len(g.shape) {
		panic(fmt.Sprintf("mask: index %v has %d components, grid has %d axes", idx, len(idx), len(g.shape)))
	}
	off := 0
	for i, v := range idx {
		if v < 0 || v >= g.shape[i] {
			panic(fmt.Sprintf("mask: index %v out of range for shape %v", idx, g.shape))
		}
		off += v * g.strides[i]
	}
	return off
}

// sameShape reports whether two shapes are identical.
func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// forEachIndex calls fn for every multi-index in the half-open box
// [lo, hi). The slice passed to fn is reused between calls. Nothing is
// visited when any axis is empty.
func forEachIndex(lo, hi []int, fn func(idx []int)) {
	n := len(lo)
	for i := 0; i < n; i++ {
		if hi[i] <= lo[i] {
			return
		}
	}
	idx := append([]int(nil), lo...)
	for {
		fn(idx)
		axis := n - 1
		for axis >= 0 {
			idx[axis]++
			if idx[axis] < hi[axis] {
				break
			}
			idx[axis] = lo[axis]
			axis--
		}
		if axis < 0 {
			return
		}
	}
}
