package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/masks/internal/mask"
)

// PreviewOptions control how a grid is rendered.
type PreviewOptions struct {
	// Scale is the edge length in pixels of one grid cell.
	Scale int

	// High and Low are the colours for the largest and smallest grid
	// values, in any form accepted by ParseColor.
	High string
	Low  string

	// Slice picks the depth slice of a 3D grid. Negative means the middle
	// slice. Ignored for 2D grids.
	Slice int

	// Region restricts the preview to part of the plane, in cells.
	Region *Region

	// GridSpacing draws reference lines every GridSpacing cells when
	// positive.
	GridSpacing int
	GridColor   string
}

// DefaultPreviewOptions renders white foreground on black at one pixel per
// cell, showing the middle slice of 3D grids.
func DefaultPreviewOptions() PreviewOptions {
	return PreviewOptions{
		Scale:     1,
		High:      "#FFFFFF",
		Low:       "#000000",
		Slice:     -1,
		GridColor: "#FF0000",
	}
}

// PreviewResult contains a rendered preview encoded as base64 PNG.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Slice       int    `json:"slice,omitempty"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Render draws g as an image. For 3D grids it also returns the slice that
// was drawn; for 2D grids the slice is 0.
func Render(g *mask.Grid, opts PreviewOptions) (*image.NRGBA, int, error) {
	if opts.Scale < 1 {
		return nil, 0, fmt.Errorf("invalid preview scale %d: must be at least 1", opts.Scale)
	}
	high, err := ParseColor(opts.High)
	if err != nil {
		return nil, 0, fmt.Errorf("high color: %w", err)
	}
	low, err := ParseColor(opts.Low)
	if err != nil {
		return nil, 0, fmt.Errorf("low color: %w", err)
	}

	shape := g.Shape()
	var depth, slice int
	switch len(shape) {
	case 2:
		depth = 1
	case 3:
		depth = shape[2]
		slice = opts.Slice
		if slice < 0 {
			slice = depth / 2
		}
		if slice >= depth {
			return nil, 0, fmt.Errorf("slice %d out of range: grid has %d slices", slice, depth)
		}
	default:
		return nil, 0, fmt.Errorf("cannot preview a %dD grid", len(shape))
	}
	rows, cols := shape[0], shape[1]
	if rows == 0 || cols == 0 {
		return nil, 0, fmt.Errorf("cannot preview an empty %dx%d plane", rows, cols)
	}

	// The ramp spans the whole grid so that every slice of a volume is
	// drawn on the same scale.
	lo, hi := g.Range()
	ramp := NewRamp(lo, hi, low, high)

	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	data := g.Data()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			img.SetNRGBA(c, r, ramp.At(data[(r*cols+c)*depth+slice]))
		}
	}

	if opts.Region != nil {
		img, err = crop(img, *opts.Region)
		if err != nil {
			return nil, 0, err
		}
	}

	if opts.Scale > 1 {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*opts.Scale, b.Dy()*opts.Scale, imaging.NearestNeighbor)
	}

	if opts.GridSpacing > 0 {
		gc, err := ParseColor(opts.GridColor)
		if err != nil {
			return nil, 0, fmt.Errorf("grid color: %w", err)
		}
		drawGrid(img, opts.GridSpacing, opts.Scale, gc)
	}

	return img, slice, nil
}

// Preview renders g and encodes the result as base64 PNG.
func Preview(g *mask.Grid, opts PreviewOptions) (*PreviewResult, error) {
	img, slice, err := Render(g, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		Slice:       slice,
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// SavePreview renders g and writes it to path. The image format is taken
// from the extension (PNG, JPEG, GIF, TIFF or BMP).
func SavePreview(path string, g *mask.Grid, opts PreviewOptions) error {
	img, _, err := Render(g, opts)
	if err != nil {
		return err
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to save preview %s: %w", path, err)
	}
	return nil
}
