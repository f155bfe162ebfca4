package mask

import (
	"errors"
	"fmt"
)

// ErrDimension is wrapped by errors about vectors whose lengths disagree or
// whose dimensionality is not 2 or 3.
var ErrDimension = errors.New("inconsistent dimensions")

// Axis identifies a grid axis in error messages.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
	Depth
)

// String returns the axis name used in error messages.
func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	case Depth:
		return "depth"
	default:
		return fmt.Sprintf("axis %d", int(a))
	}
}

// extent names the canvas/mask extent along the axis.
func (a Axis) extent() string {
	switch a {
	case Vertical:
		return "height"
	case Horizontal:
		return "width"
	case Depth:
		return "depth"
	default:
		return "extent"
	}
}

// GeometryError reports the first axis on which a mask does not fit its
// canvas.
type GeometryError struct {
	Axis   Axis
	Canvas int
	Size   int
	Pos    int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("mask %s position (%d) and %s (%d) incompatible with image %s (%d)",
		e.Axis, e.Pos, e.Axis.extent(), e.Size, e.Axis.extent(), e.Canvas)
}

// ShapeMismatchError is returned by Apply when mask and image shapes differ.
type ShapeMismatchError struct {
	Mask  []int
	Image []int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mask shape %v does not match image shape %v", e.Mask, e.Image)
}
