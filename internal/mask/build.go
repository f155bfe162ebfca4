package mask

import "fmt"

// New validates spec and builds its mask.
func New(spec Spec) (*Grid, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return build(spec), nil
}

// Build paints the mask described by spec onto a fresh canvas.
//
// The spec must already have passed Validate. Build re-checks it and panics
// on failure: an unvalidated spec reaching Build is a programming error, not
// an input error.
//
// # Algorithm
//
//  1. Allocate a grid shaped like spec.Canvas, filled with the background.
//  2. Quad: fill the half-open box [Pos[i], Pos[i]+Size[i]) on every axis
//     with the foreground.
//  3. Ellipse: with radius r = Size[0]/2, visit each local offset o inside
//     the Size box and paint Pos+o when sum((o[a]-r)^2) <= r^2. Only the
//     Size box is visited; the rest of the canvas keeps the background.
//
// When spec.Invert is set the two values trade places: the region receives
// the background value and everything else the foreground value.
func Build(spec Spec) *Grid {
	if err := spec.Validate(); err != nil {
		panic(fmt.Sprintf("mask: Build called with invalid spec: %v", err))
	}
	return build(spec)
}

func build(spec Spec) *Grid {
	fg, bg := spec.values()
	g := NewGridFilled(bg, spec.Canvas...)

	switch spec.Shape {
	case Quad:
		paintQuad(g, spec.Pos, spec.Size, fg)
	case Ellipse:
		paintEllipse(g, spec.Pos, spec.Size, fg)
	}
	return g
}

func paintQuad(g *Grid, pos, size []int, value float64) {
	hi := make([]int, len(pos))
	for i := range pos {
		hi[i] = pos[i] + size[i]
	}

	// Whole rows along the last axis are contiguous, so fill them in one go.
	last := len(pos) - 1
	outerLo := append([]int(nil), pos[:last]...)
	outerHi := hi[:last]
	if size[last] == 0 {
		return
	}
	cell := make([]int, len(pos))
	forEachIndex(outerLo, outerHi, func(idx []int) {
		copy(cell, idx)
		cell[last] = pos[last]
		start := g.offset(cell)
		row := g.data[start : start+size[last]]
		for i := range row {
			row[i] = value
		}
	})
}

func paintEllipse(g *Grid, pos, size []int, value float64) {
	radius := float64(size[0]) / 2
	r2 := radius * radius

	zero := make([]int, len(size))
	cell := make([]int, len(size))
	forEachIndex(zero, size, func(o []int) {
		var d2 float64
		for _, v := range o {
			d := float64(v) - radius
			d2 += d * d
		}
		if d2 > r2 {
			return
		}
		for a := range o {
			cell[a] = pos[a] + o[a]
		}
		g.data[g.offset(cell)] = value
	})
}
