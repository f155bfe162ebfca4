package app

import (
	"fmt"
	"strings"

	"github.com/ironsheep/masks/internal/imaging"
	"github.com/ironsheep/masks/internal/mask"
	"github.com/ironsheep/masks/internal/volume"
)

// Config holds every option of a make run.
type Config struct {
	// ImageSize, MaskSize and MaskPos are in grid axis order (vertical,
	// horizontal, depth). A single value is repeated on every axis.
	ImageSize []int
	MaskSize  []int
	MaskPos   []int

	VisibleValue float64 // painted inside the shape
	MaskValue    float64 // everywhere else
	Invert       bool
	Dimension    int
	Shape        string

	// VoxelSize is the physical cell size along X, Y and Z. A single value
	// is used on all three axes.
	VoxelSize []float64

	Output      string // mask file; empty means don't save
	InputImage  string // image to mask
	OutputImage string // masked image, required with InputImage

	Preview      string // raster file showing the mask or masked image
	PreviewScale int
	PreviewHigh  string
	PreviewLow   string

	Verbose   bool
	LogLevel  string
	LogFormat string
}

// DefaultConfig returns the option set used when nothing is specified: a
// 6x6 quad at (2,2) in a 10x10 image.
func DefaultConfig() Config {
	return Config{
		ImageSize:    []int{10},
		MaskSize:     []int{6},
		MaskPos:      []int{2},
		VisibleValue: 1.0,
		MaskValue:    0.0,
		Dimension:    2,
		Shape:        mask.Quad.String(),
		VoxelSize:    []float64{1.0},
		PreviewScale: 1,
		PreviewHigh:  "#FFFFFF",
		PreviewLow:   "#000000",
		LogLevel:     "warn",
		LogFormat:    "text",
	}
}

// ArgumentConsistencyError reports options that contradict each other, such
// as vectors of different lengths or an input image without an output.
type ArgumentConsistencyError struct {
	Reason string
	Err    error
}

func (e *ArgumentConsistencyError) Error() string { return e.Reason }

func (e *ArgumentConsistencyError) Unwrap() error { return e.Err }

func inconsistent(format string, args ...any) *ArgumentConsistencyError {
	return &ArgumentConsistencyError{Reason: fmt.Sprintf(format, args...)}
}

// NewConfig normalises cfg and checks it. Single-value vectors are
// broadcast to Dimension axes, then the vectors' lengths, the shape name,
// the pairing of input and output images and the output extensions are
// checked, and finally the mask geometry is validated.
//
// Every check that can fail before files are read happens here, so a
// rejected config never leaves partial output behind.
func NewConfig(cfg Config) (*Config, error) {
	dim := mask.Dimensionality(cfg.Dimension)
	if !dim.Valid() {
		return nil, &ArgumentConsistencyError{
			Reason: fmt.Sprintf("invalid dimension %d: must be 2 or 3", cfg.Dimension),
			Err:    mask.ErrDimension,
		}
	}
	if _, err := mask.ParseShape(cfg.Shape); err != nil {
		return nil, &ArgumentConsistencyError{Reason: err.Error(), Err: err}
	}

	var err error
	if cfg.ImageSize, err = broadcast("image size", cfg.ImageSize, cfg.Dimension); err != nil {
		return nil, err
	}
	if cfg.MaskSize, err = broadcast("mask size", cfg.MaskSize, cfg.Dimension); err != nil {
		return nil, err
	}
	if cfg.MaskPos, err = broadcast("mask position", cfg.MaskPos, cfg.Dimension); err != nil {
		return nil, err
	}
	if len(cfg.ImageSize) != len(cfg.MaskSize) || len(cfg.MaskSize) != len(cfg.MaskPos) ||
		len(cfg.ImageSize) != cfg.Dimension {
		return nil, &ArgumentConsistencyError{
			Reason: fmt.Sprintf("inconsistent dimensions: image=%v; mask=%v; pos=%v (dimension %d)",
				cfg.ImageSize, cfg.MaskSize, cfg.MaskPos, cfg.Dimension),
			Err: mask.ErrDimension,
		}
	}

	switch len(cfg.VoxelSize) {
	case 0:
		cfg.VoxelSize = []float64{1, 1, 1}
	case 1:
		v := cfg.VoxelSize[0]
		cfg.VoxelSize = []float64{v, v, v}
	case 3:
		cfg.VoxelSize = append([]float64(nil), cfg.VoxelSize...)
	default:
		return nil, inconsistent("voxel size %v: give one value or three (x, y, z)", cfg.VoxelSize)
	}
	for _, v := range cfg.VoxelSize {
		if v <= 0 {
			return nil, inconsistent("voxel size %v: values must be positive", cfg.VoxelSize)
		}
	}

	if (cfg.InputImage == "") != (cfg.OutputImage == "") {
		return nil, inconsistent("--input-image and --output-image must be given together")
	}

	if cfg.Output != "" {
		if err := volume.CheckWritable(cfg.Output, cfg.Dimension); err != nil {
			return nil, &ArgumentConsistencyError{Reason: err.Error(), Err: err}
		}
	}
	if cfg.OutputImage != "" {
		if err := volume.CheckWritable(cfg.OutputImage, cfg.Dimension); err != nil {
			return nil, &ArgumentConsistencyError{Reason: err.Error(), Err: err}
		}
	}

	if cfg.PreviewScale == 0 {
		cfg.PreviewScale = 1
	}
	if cfg.PreviewScale < 0 {
		return nil, inconsistent("invalid preview scale %d: must be at least 1", cfg.PreviewScale)
	}
	if cfg.PreviewHigh == "" {
		cfg.PreviewHigh = "#FFFFFF"
	}
	if cfg.PreviewLow == "" {
		cfg.PreviewLow = "#000000"
	}
	if cfg.Preview != "" {
		if volume.FormatOf(cfg.Preview) != volume.FormatRaster {
			return nil, inconsistent("preview %s: must be a .png, .jpg, .gif, .bmp or .tif file", cfg.Preview)
		}
		for _, c := range []string{cfg.PreviewHigh, cfg.PreviewLow} {
			if _, err := imaging.ParseColor(c); err != nil {
				return nil, &ArgumentConsistencyError{Reason: "preview colors: " + err.Error(), Err: err}
			}
		}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "warn"
	case "debug", "info", "warn", "error":
	default:
		return nil, inconsistent("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, inconsistent("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	if err := mask.Validate(cfg.ImageSize, cfg.MaskSize, cfg.MaskPos); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// broadcast repeats a single value n times. Longer vectors are copied as
// they are; their length is checked by the caller.
func broadcast(name string, v []int, n int) ([]int, error) {
	switch len(v) {
	case 0:
		return nil, inconsistent("%s: at least one value is required", name)
	case 1:
		out := make([]int, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	default:
		return append([]int(nil), v...), nil
	}
}

// Spec returns the mask described by a config returned from NewConfig.
func (c *Config) Spec() mask.Spec {
	shape, _ := mask.ParseShape(c.Shape)
	return mask.Spec{
		Canvas:     c.ImageSize,
		Size:       c.MaskSize,
		Pos:        c.MaskPos,
		Shape:      shape,
		Foreground: c.VisibleValue,
		Background: c.MaskValue,
		Invert:     c.Invert,
		Dim:        mask.Dimensionality(c.Dimension),
	}
}

// Painted returns the value carried by cells inside the shape.
func (c *Config) Painted() float64 {
	if c.Invert {
		return c.MaskValue
	}
	return c.VisibleValue
}

// Calibration returns the calibration written with a standalone mask.
func (c *Config) Calibration() volume.Calibration {
	cal := volume.DefaultCalibration()
	copy(cal.VoxelSize[:], c.VoxelSize)
	return cal
}

// PreviewOptions returns the rendering options for the preview file.
func (c *Config) PreviewOptions() imaging.PreviewOptions {
	opts := imaging.DefaultPreviewOptions()
	opts.Scale = c.PreviewScale
	opts.High = c.PreviewHigh
	opts.Low = c.PreviewLow
	return opts
}
