package cli

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/ironsheep/masks/internal/app"
)

// optionFile is the layout of a make option file. Every attribute is
// optional; absent attributes leave the corresponding option untouched.
//
//	image_size     = [40, 20]
//	mask_size      = [20]
//	mask_pos       = [10, 0]
//	shape          = "ellipse"
//	output         = "mask.txt"
//	preview        = "mask.png"
//	preview_colors = ["yellow", "blue"]
type optionFile struct {
	ImageSize     []int     `hcl:"image_size,optional"`
	MaskSize      []int     `hcl:"mask_size,optional"`
	MaskPos       []int     `hcl:"mask_pos,optional"`
	VisibleValue  *float64  `hcl:"visible_value,optional"`
	MaskValue     *float64  `hcl:"mask_value,optional"`
	Invert        *bool     `hcl:"invert,optional"`
	Dimension     *int      `hcl:"dimension,optional"`
	Shape         *string   `hcl:"shape,optional"`
	VoxelSize     []float64 `hcl:"voxel_size,optional"`
	Output        *string   `hcl:"output,optional"`
	InputImage    *string   `hcl:"input_image,optional"`
	OutputImage   *string   `hcl:"output_image,optional"`
	Preview       *string   `hcl:"preview,optional"`
	PreviewScale  *int      `hcl:"preview_scale,optional"`
	PreviewColors []string  `hcl:"preview_colors,optional"`
	Verbose       *bool     `hcl:"verbose,optional"`
	LogLevel      *string   `hcl:"log_level,optional"`
	LogFormat     *string   `hcl:"log_format,optional"`
}

// loadOptionFile parses the HCL file at path and applies the options it
// sets to cfg.
func loadOptionFile(path string, cfg *app.Config) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var opts optionFile
	diags = gohcl.DecodeBody(file.Body, nil, &opts)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	if opts.ImageSize != nil {
		cfg.ImageSize = opts.ImageSize
	}
	if opts.MaskSize != nil {
		cfg.MaskSize = opts.MaskSize
	}
	if opts.MaskPos != nil {
		cfg.MaskPos = opts.MaskPos
	}
	if opts.VisibleValue != nil {
		cfg.VisibleValue = *opts.VisibleValue
	}
	if opts.MaskValue != nil {
		cfg.MaskValue = *opts.MaskValue
	}
	if opts.Invert != nil {
		cfg.Invert = *opts.Invert
	}
	if opts.Dimension != nil {
		cfg.Dimension = *opts.Dimension
	}
	if opts.Shape != nil {
		cfg.Shape = *opts.Shape
	}
	if opts.VoxelSize != nil {
		cfg.VoxelSize = opts.VoxelSize
	}
	if opts.Output != nil {
		cfg.Output = *opts.Output
	}
	if opts.InputImage != nil {
		cfg.InputImage = *opts.InputImage
	}
	if opts.OutputImage != nil {
		cfg.OutputImage = *opts.OutputImage
	}
	if opts.Preview != nil {
		cfg.Preview = *opts.Preview
	}
	if opts.PreviewScale != nil {
		cfg.PreviewScale = *opts.PreviewScale
	}
	if opts.PreviewColors != nil {
		if len(opts.PreviewColors) != 2 {
			return fmt.Errorf("%s: preview_colors needs two colors (foreground, background), got %d", path, len(opts.PreviewColors))
		}
		cfg.PreviewHigh, cfg.PreviewLow = opts.PreviewColors[0], opts.PreviewColors[1]
	}
	if opts.Verbose != nil && *opts.Verbose {
		cfg.Verbose = true
		cfg.LogLevel = "info"
	}
	if opts.LogLevel != nil {
		cfg.LogLevel = *opts.LogLevel
	}
	if opts.LogFormat != nil {
		cfg.LogFormat = *opts.LogFormat
	}
	return nil
}
