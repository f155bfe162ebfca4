package volume

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ironsheep/masks/internal/mask"
)

// Calibration is the spatial metadata carried alongside a grid.
type Calibration struct {
	// VoxelSize is the physical size of one cell along X, Y and Z.
	VoxelSize [3]float64 `json:"voxel_size"`

	// Origin is the index of the first cell along X, Y and Z.
	Origin [3]int `json:"origin"`
}

// DefaultCalibration is used for standalone masks: unit voxels, zero origin.
func DefaultCalibration() Calibration {
	return Calibration{VoxelSize: [3]float64{1, 1, 1}}
}

// IOError reports a failure to read or write a file.
type IOError struct {
	Op   string // "open", "read", "decode", "create" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Format is a file family recognised by extension.
type Format int

const (
	FormatText Format = iota
	FormatMRC
	FormatRaster
)

func (f Format) String() string {
	switch f {
	case FormatMRC:
		return "mrc"
	case FormatRaster:
		return "raster"
	default:
		return "text"
	}
}

// FormatOf picks the file family for path. Matching is case-insensitive and
// ignores a trailing ".gz" for MRC files.
func FormatOf(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".gz" {
		ext = strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path))))
		if isMRCExt(ext) {
			return FormatMRC
		}
		return FormatText
	}
	switch {
	case isMRCExt(ext):
		return FormatMRC
	case isRasterExt(ext):
		return FormatRaster
	default:
		return FormatText
	}
}

// IsVolumetric reports whether path names an MRC file.
func IsVolumetric(path string) bool { return FormatOf(path) == FormatMRC }

func isMRCExt(ext string) bool {
	switch ext {
	case ".mrc", ".map", ".rec":
		return true
	}
	return false
}

func isCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".gz")
}

// CheckWritable reports whether a grid with dims axes can be saved to path.
// It does not touch the file system; callers use it to reject a request
// before any output is written.
func CheckWritable(path string, dims int) error {
	if dims == 2 || FormatOf(path) == FormatMRC {
		return nil
	}
	return fmt.Errorf("cannot write a %dD grid to %s: only .mrc, .map and .rec hold 3D data", dims, path)
}

// Load reads a grid and its calibration from path.
func Load(path string) (*mask.Grid, Calibration, error) {
	switch FormatOf(path) {
	case FormatMRC:
		return LoadMRC(path)
	case FormatRaster:
		g, err := LoadRaster(path)
		return g, DefaultCalibration(), err
	default:
		g, err := LoadText(path)
		return g, DefaultCalibration(), err
	}
}

// Save writes g to path in the format implied by its extension. The
// calibration is only recorded by MRC files.
func Save(path string, g *mask.Grid, cal Calibration) error {
	if err := CheckWritable(path, g.Dims()); err != nil {
		return err
	}
	switch FormatOf(path) {
	case FormatMRC:
		return SaveMRC(path, g, cal)
	case FormatRaster:
		return SaveRaster(path, g)
	default:
		return SaveText(path, g)
	}
}
