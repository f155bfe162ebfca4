package mask

import "fmt"

// Validate checks that a mask of the given size placed at pos fits inside
// canvas.
//
// All three vectors must have the same number of components, 2 or 3, in grid
// axis order (vertical, horizontal, depth). Otherwise the returned error
// wraps ErrDimension.
//
// Axes are checked in order. For each axis the canvas extent must be
// positive, the size and position non-negative, and
//
//	canvas[i] >= size[i] + pos[i]
//
// The first axis that fails yields a *GeometryError carrying the three
// offending values; later axes are not examined. A zero size is valid and
// produces an all-background mask.
func Validate(canvas, size, pos []int) error {
	n := len(canvas)
	if n != len(size) || n != len(pos) {
		return fmt.Errorf("%w: image=%v; mask=%v; pos=%v", ErrDimension, canvas, size, pos)
	}
	if n != 2 && n != 3 {
		return fmt.Errorf("%w: %d axes (want 2 or 3)", ErrDimension, n)
	}
	for i := 0; i < n; i++ {
		if canvas[i] <= 0 || size[i] < 0 || pos[i] < 0 || size[i] > canvas[i]-pos[i] {
			return &GeometryError{
				Axis:   Axis(i),
				Canvas: canvas[i],
				Size:   size[i],
				Pos:    pos[i],
			}
		}
	}
	return nil
}
