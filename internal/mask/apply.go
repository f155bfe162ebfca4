package mask

// Apply multiplies img by m cell by cell and returns the product as a new
// grid. Neither input is modified.
//
// The shapes must be identical; broadcasting is not supported. A mismatch
// returns a *ShapeMismatchError naming both shapes.
func Apply(m, img *Grid) (*Grid, error) {
	if !sameShape(m.shape, img.shape) {
		return nil, &ShapeMismatchError{Mask: m.Shape(), Image: img.Shape()}
	}
	out := NewGrid(m.shape...)
	for i, v := range m.data {
		out.data[i] = v * img.data[i]
	}
	return out, nil
}
