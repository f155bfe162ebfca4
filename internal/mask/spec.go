package mask

import "fmt"

// Shape selects the region painted by Build.
type Shape int

const (
	// Quad paints an axis-aligned rectangle or box.
	Quad Shape = iota
	// Ellipse paints a circle or sphere.
	Ellipse
)

// String returns the command-line spelling of the shape.
func (s Shape) String() string {
	switch s {
	case Quad:
		return "quad"
	case Ellipse:
		return "ellipse"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts "quad" or "ellipse" to a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "quad":
		return Quad, nil
	case "ellipse":
		return Ellipse, nil
	}
	return 0, fmt.Errorf("unknown shape %q (want quad or ellipse)", name)
}

// Dimensionality is the number of grid axes a mask spans.
type Dimensionality int

const (
	Two   Dimensionality = 2
	Three Dimensionality = 3
)

// Valid reports whether d is a supported dimensionality.
func (d Dimensionality) Valid() bool { return d == Two || d == Three }

// Spec describes a mask. All vectors are in grid axis order and must have
// Dim components.
type Spec struct {
	Canvas []int
	Size   []int
	Pos    []int

	Shape      Shape
	Foreground float64
	Background float64

	// Invert swaps the roles of Foreground and Background.
	Invert bool

	Dim Dimensionality
}

// Validate checks the spec's dimensionality and that the region fits the
// canvas. See the package-level Validate.
func (s Spec) Validate() error {
	if !s.Dim.Valid() {
		return fmt.Errorf("%w: dimension %d", ErrDimension, int(s.Dim))
	}
	if len(s.Canvas) != int(s.Dim) {
		return fmt.Errorf("%w: canvas %v does not have %d components", ErrDimension, s.Canvas, int(s.Dim))
	}
	if s.Shape != Quad && s.Shape != Ellipse {
		return fmt.Errorf("unknown shape %v", s.Shape)
	}
	return Validate(s.Canvas, s.Size, s.Pos)
}

// values returns the foreground and background to paint with, honouring
// Invert.
func (s Spec) values() (fg, bg float64) {
	if s.Invert {
		return s.Background, s.Foreground
	}
	return s.Foreground, s.Background
}
