package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Region is a rectangle of grid cells. X runs along columns (grid axis 1)
// and Y along rows (grid axis 0); X2 and Y2 are exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// crop extracts a rectangular region from an image
func crop(img image.Image, r Region) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if r.X1 < bounds.Min.X || r.Y1 < bounds.Min.Y || r.X2 > bounds.Max.X || r.Y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.X1, r.Y1, r.X2, r.Y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.X1 >= r.X2 || r.Y1 >= r.Y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, image.Rect(r.X1, r.Y1, r.X2, r.Y2)), nil
}

// NamedRegion returns the region called name in a w by h plane. Accepted
// names are the quadrants ("top-left", "top-right", "bottom-left",
// "bottom-right"), the halves ("top-half", "bottom-half", "left-half",
// "right-half") and "center", the middle half of each axis.
func NamedRegion(name string, w, h int) (Region, error) {
	midX := w / 2
	midY := h / 2

	switch name {
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, w, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, h}, nil
	case "bottom-right":
		return Region{midX, midY, w, h}, nil
	case "top-half":
		return Region{0, 0, w, midY}, nil
	case "bottom-half":
		return Region{0, midY, w, h}, nil
	case "left-half":
		return Region{0, 0, midX, h}, nil
	case "right-half":
		return Region{midX, 0, w, h}, nil
	case "center":
		return Region{w / 4, h / 4, w - w/4, h - h/4}, nil
	}
	return Region{}, fmt.Errorf("unknown region: %s (valid: top-left, top-right, bottom-left, bottom-right, top-half, bottom-half, left-half, right-half, center)", name)
}
