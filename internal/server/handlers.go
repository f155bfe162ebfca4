package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/masks/internal/app"
	"github.com/ironsheep/masks/internal/imaging"
	"github.com/ironsheep/masks/internal/mask"
	"github.com/ironsheep/masks/internal/volume"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "mask_make", "volume_info").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Info("Tool call failed.", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Builds a fresh app.Config, validated the same way as the CLI
//  4. Calls the appropriate app/volume/imaging function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	switch name {
	// Masks
	case "mask_make":
		return s.handleMaskMake(ctx, args)
	case "mask_apply":
		return s.handleMaskApply(ctx, args)
	case "mask_validate":
		return s.handleMaskValidate(args)

	// Volumes
	case "volume_info":
		return s.handleVolumeInfo(args)
	case "volume_preview":
		return s.handleVolumePreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// A marshal error yields an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Mask Handlers ===

// maskArgs are the mask options shared by mask_make, mask_apply and
// mask_validate. Zero values fall back to the CLI defaults.
type maskArgs struct {
	ImageSize    []int     `json:"image_size"`
	MaskSize     []int     `json:"mask_size"`
	MaskPos      []int     `json:"mask_pos"`
	VisibleValue *float64  `json:"visible_value"`
	MaskValue    *float64  `json:"mask_value"`
	Invert       bool      `json:"invert"`
	Dimension    int       `json:"dimension"`
	Shape        string    `json:"shape"`
	VoxelSize    []float64 `json:"voxel_size"`
}

func (a maskArgs) config() app.Config {
	cfg := app.DefaultConfig()
	if a.ImageSize != nil {
		cfg.ImageSize = a.ImageSize
	}
	if a.MaskSize != nil {
		cfg.MaskSize = a.MaskSize
	}
	if a.MaskPos != nil {
		cfg.MaskPos = a.MaskPos
	}
	if a.VisibleValue != nil {
		cfg.VisibleValue = *a.VisibleValue
	}
	if a.MaskValue != nil {
		cfg.MaskValue = *a.MaskValue
	}
	cfg.Invert = a.Invert
	if a.Dimension != 0 {
		cfg.Dimension = a.Dimension
	}
	if a.Shape != "" {
		cfg.Shape = a.Shape
	}
	if a.VoxelSize != nil {
		cfg.VoxelSize = a.VoxelSize
	}
	return cfg
}

type previewArgs struct {
	Preview       bool     `json:"preview"`
	PreviewScale  int      `json:"preview_scale"`
	PreviewColors []string `json:"preview_colors"`
}

func (p previewArgs) options() (imaging.PreviewOptions, error) {
	opts := imaging.DefaultPreviewOptions()
	if p.PreviewScale != 0 {
		opts.Scale = p.PreviewScale
	}
	switch len(p.PreviewColors) {
	case 0:
	case 2:
		opts.High, opts.Low = p.PreviewColors[0], p.PreviewColors[1]
	default:
		return opts, fmt.Errorf("preview_colors needs two colors (foreground, background), got %d", len(p.PreviewColors))
	}
	return opts, nil
}

type maskMakeArgs struct {
	maskArgs
	previewArgs
	Output        string `json:"output"`
	IncludeValues bool   `json:"include_values"`
}

type maskApplyArgs struct {
	maskArgs
	previewArgs
	Output      string `json:"output"`
	InputImage  string `json:"input_image"`
	OutputImage string `json:"output_image"`
}

// makeResult is the JSON returned by mask_make and mask_apply.
type makeResult struct {
	*app.Result
	Shape        []int                  `json:"shape"`
	Values       string                 `json:"values,omitempty"`
	PreviewImage *imaging.PreviewResult `json:"preview_image,omitempty"`
}

// maxValueCells bounds the size of grids whose values are echoed back.
const maxValueCells = 4096

func (s *Server) handleMaskMake(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a maskMakeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	raw := a.config()
	raw.Output = a.Output
	return s.runMake(ctx, raw, a.previewArgs, a.IncludeValues)
}

func (s *Server) handleMaskApply(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a maskApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.InputImage == "" || a.OutputImage == "" {
		return nil, fmt.Errorf("input_image and output_image are required")
	}
	raw := a.config()
	raw.Output = a.Output
	raw.InputImage = a.InputImage
	raw.OutputImage = a.OutputImage
	return s.runMake(ctx, raw, a.previewArgs, false)
}

func (s *Server) runMake(ctx context.Context, raw app.Config, p previewArgs, includeValues bool) (interface{}, error) {
	opts, err := p.options()
	if err != nil {
		return nil, err
	}
	cfg, err := app.NewConfig(raw)
	if err != nil {
		return nil, err
	}
	res, err := app.Make(ctx, cfg)
	if err != nil {
		return nil, err
	}

	out := &makeResult{Result: res, Shape: res.Mask.Shape()}
	shown := res.Mask
	if res.Masked != nil {
		shown = res.Masked
	}
	if includeValues {
		if shown.Len() > maxValueCells {
			return nil, fmt.Errorf("grid has %d cells; include_values is limited to %d", shown.Len(), maxValueCells)
		}
		out.Values = shown.String()
	}
	if p.Preview {
		out.PreviewImage, err = imaging.Preview(shown, opts)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// validateResult reports whether a mask fits its canvas.
type validateResult struct {
	Valid     bool   `json:"valid"`
	ImageSize []int  `json:"image_size,omitempty"`
	MaskSize  []int  `json:"mask_size,omitempty"`
	MaskPos   []int  `json:"mask_pos,omitempty"`
	Axis      string `json:"axis,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (s *Server) handleMaskValidate(args json.RawMessage) (interface{}, error) {
	var a maskArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	cfg, err := app.NewConfig(a.config())
	if err != nil {
		res := &validateResult{Error: err.Error()}
		var geomErr *mask.GeometryError
		if errors.As(err, &geomErr) {
			res.Axis = geomErr.Axis.String()
		}
		return res, nil
	}
	return &validateResult{
		Valid:     true,
		ImageSize: cfg.ImageSize,
		MaskSize:  cfg.MaskSize,
		MaskPos:   cfg.MaskPos,
	}, nil
}

// === Volume Handlers ===

type volumeArgs struct {
	Path string `json:"path"`
}

// volumeInfo describes a grid file.
type volumeInfo struct {
	Path        string             `json:"path"`
	Format      string             `json:"format"`
	Shape       []int              `json:"shape"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Mean        float64            `json:"mean"`
	Calibration volume.Calibration `json:"calibration"`

	// MRC header fields
	Mode  *int32 `json:"mode,omitempty"`
	Label string `json:"label,omitempty"`
}

func (s *Server) handleVolumeInfo(args json.RawMessage) (interface{}, error) {
	var a volumeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	g, cal, err := volume.Load(a.Path)
	if err != nil {
		return nil, err
	}
	info := &volumeInfo{
		Path:        a.Path,
		Format:      volume.FormatOf(a.Path).String(),
		Shape:       g.Shape(),
		Calibration: cal,
	}
	info.Min, info.Max = g.Range()
	if n := g.Len(); n > 0 {
		var sum float64
		for _, v := range g.Data() {
			sum += v
		}
		info.Mean = sum / float64(n)
	}

	if volume.IsVolumetric(a.Path) {
		h, err := volume.ReadHeader(a.Path)
		if err != nil {
			return nil, err
		}
		mode := h.Mode
		info.Mode = &mode
		info.Label = h.Label()
	}
	return info, nil
}

type volumePreviewArgs struct {
	Path        string          `json:"path"`
	Scale       int             `json:"scale"`
	Colors      []string        `json:"colors"`
	Slice       *int            `json:"slice"`
	Region      *imaging.Region `json:"region"`
	NamedRegion string          `json:"named_region"`
	GridSpacing int             `json:"grid_spacing"`
	GridColor   string          `json:"grid_color"`
}

func (s *Server) handleVolumePreview(args json.RawMessage) (interface{}, error) {
	var a volumePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	opts, err := previewArgs{PreviewScale: a.Scale, PreviewColors: a.Colors}.options()
	if err != nil {
		return nil, err
	}
	if a.Slice != nil {
		opts.Slice = *a.Slice
	}
	opts.GridSpacing = a.GridSpacing
	if a.GridColor != "" {
		opts.GridColor = a.GridColor
	}

	g, _, err := volume.Load(a.Path)
	if err != nil {
		return nil, err
	}
	switch {
	case a.Region != nil && a.NamedRegion != "":
		return nil, fmt.Errorf("give either region or named_region, not both")
	case a.Region != nil:
		opts.Region = a.Region
	case a.NamedRegion != "":
		shape := g.Shape()
		if len(shape) < 2 {
			return nil, fmt.Errorf("cannot preview a %dD grid", len(shape))
		}
		r, err := imaging.NamedRegion(a.NamedRegion, shape[1], shape[0])
		if err != nil {
			return nil, err
		}
		opts.Region = &r
	}
	return imaging.Preview(g, opts)
}
