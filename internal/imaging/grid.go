package imaging

import (
	"image"
	"image/color"
)

// drawGrid draws reference lines every spacing cells on a preview that has
// been scaled up by scale. Lines sit on the first pixel of every
// spacing-th cell, so they line up with mask positions given on the command
// line.
func drawGrid(img *image.NRGBA, spacing, scale int, c color.Color) {
	if spacing <= 0 {
		return
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	step := spacing * scale

	// Draw vertical lines
	for x := step; x < width; x += step {
		for y := 0; y < height; y++ {
			img.Set(bounds.Min.X+x, bounds.Min.Y+y, c)
		}
	}

	// Draw horizontal lines
	for y := step; y < height; y += step {
		for x := 0; x < width; x++ {
			img.Set(bounds.Min.X+x, bounds.Min.Y+y, c)
		}
	}
}
