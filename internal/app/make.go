package app

import (
	"context"
	"fmt"

	"github.com/ironsheep/masks/internal/imaging"
	"github.com/ironsheep/masks/internal/mask"
	"github.com/ironsheep/masks/internal/volume"
)

// Result describes a completed make run.
type Result struct {
	// Mask is the built mask. Masked is the masked input image, nil when
	// no input image was given.
	Mask   *mask.Grid `json:"-"`
	Masked *mask.Grid `json:"-"`

	Stats *mask.Stats `json:"stats"`

	Output      string `json:"output,omitempty"`
	InputImage  string `json:"input_image,omitempty"`
	OutputImage string `json:"output_image,omitempty"`
	Preview     string `json:"preview,omitempty"`

	// Summary holds the human-readable report lines, one per output.
	Summary []string `json:"summary"`
}

// Make builds the mask described by cfg and writes the requested outputs.
// cfg must come from NewConfig.
//
// The input image is loaded and masked before anything is written, so a
// shape mismatch leaves no files behind. Outputs are written in order:
// mask, masked image, preview.
func Make(ctx context.Context, cfg *Config) (*Result, error) {
	logger := LoggerFrom(ctx)
	spec := cfg.Spec()

	m, err := mask.New(spec)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Mask:  m,
		Stats: mask.Measure(m, cfg.Painted()),
	}
	logger.Info("Mask built.",
		"shape", spec.Shape, "canvas", spec.Canvas, "size", spec.Size, "pos", spec.Pos,
		"cells", res.Stats.Count, "coverage", res.Stats.Coverage)
	logger.Debug("Mask statistics.", "min", res.Stats.Min, "max", res.Stats.Max, "centroid", res.Stats.Centroid)

	var imgCal volume.Calibration
	if cfg.InputImage != "" {
		img, cal, err := volume.Load(cfg.InputImage)
		if err != nil {
			return nil, err
		}
		logger.Debug("Input image loaded.", "path", cfg.InputImage, "shape", img.Shape(), "voxel_size", cal.VoxelSize)
		res.Masked, err = mask.Apply(m, img)
		if err != nil {
			return nil, fmt.Errorf("failed to mask %s: %w", cfg.InputImage, err)
		}
		imgCal = cal
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Output != "" {
		if err := volume.Save(cfg.Output, m, cfg.Calibration()); err != nil {
			return nil, err
		}
		res.Output = cfg.Output
		logger.Info("Mask written.", "path", cfg.Output, "format", volume.FormatOf(cfg.Output))
	}
	res.Summary = append(res.Summary, fmt.Sprintf(
		"created %v mask in image %v at position %v with voxel size %v",
		cfg.MaskSize, cfg.ImageSize, cfg.MaskPos, cfg.VoxelSize))

	if res.Masked != nil {
		if err := volume.Save(cfg.OutputImage, res.Masked, imgCal); err != nil {
			return nil, err
		}
		res.InputImage = cfg.InputImage
		res.OutputImage = cfg.OutputImage
		logger.Info("Masked image written.", "path", cfg.OutputImage)
		res.Summary = append(res.Summary, fmt.Sprintf(
			"masked image %s as %v mask in image %v at position %v written to %s",
			cfg.InputImage, cfg.MaskSize, cfg.ImageSize, cfg.MaskPos, cfg.OutputImage))
	}

	if cfg.Preview != "" {
		shown := m
		if res.Masked != nil {
			shown = res.Masked
		}
		if err := imaging.SavePreview(cfg.Preview, shown, cfg.PreviewOptions()); err != nil {
			return nil, err
		}
		res.Preview = cfg.Preview
		logger.Info("Preview written.", "path", cfg.Preview, "scale", cfg.PreviewScale)
		res.Summary = append(res.Summary, fmt.Sprintf("preview written to %s", cfg.Preview))
	}

	return res, nil
}
