package volume

import (
	"fmt"
	"image"
	"image/gif"
	"io"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/imgio"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
	"golang.org/x/image/tiff"  // Registers the TIFF decoder; also used to encode

	"github.com/ironsheep/masks/internal/mask"
)

func isRasterExt(ext string) bool {
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// LoadRaster decodes a raster image into a 2D grid of luminance values in
// [0, 1]. Row 0 is the top of the image.
func LoadRaster(path string) (*mask.Grid, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, &IOError{Op: "decode", Path: path, Err: err}
	}

	// Grayscale writes the luminance to R, G and B alike.
	gray := effect.Grayscale(img)
	b := gray.Bounds()
	g := mask.NewGrid(b.Dy(), b.Dx())
	data := g.Data()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			data[y*b.Dx()+x] = float64(gray.RGBAAt(b.Min.X+x, b.Min.Y+y).R) / 255
		}
	}
	return g, nil
}

// ToGray maps a 2D grid onto 8-bit grey levels, stretching the grid's value
// range to [0, 255]. A constant grid maps to black when its value is zero
// and to white otherwise.
func ToGray(g *mask.Grid) (*image.Gray, error) {
	if g.Dims() != 2 {
		return nil, fmt.Errorf("raster images hold 2D grids only, got %dD", g.Dims())
	}
	shape := g.Shape()
	img := image.NewGray(image.Rect(0, 0, shape[1], shape[0]))

	lo, hi := g.Range()
	for i, v := range g.Data() {
		var level float64
		switch {
		case hi > lo:
			level = (v - lo) / (hi - lo)
		case v != 0:
			level = 1
		}
		img.Pix[i] = uint8(level*255 + 0.5)
	}
	return img, nil
}

// SaveRaster writes a 2D grid as an 8-bit greyscale image. The encoder is
// chosen from the extension; see ToGray for the value mapping.
func SaveRaster(path string, g *mask.Grid) error {
	img, err := ToGray(g)
	if err != nil {
		return err
	}
	enc, err := encoderFor(path)
	if err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err := imgio.Save(path, img, enc); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func encoderFor(path string) (imgio.Encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(95), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("no encoder for %s", filepath.Ext(path))
}
