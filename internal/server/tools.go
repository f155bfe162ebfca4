package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Masks
		{
			Name:        "mask_make",
			Description: "Create a 2D or 3D mask: a quad (box) or ellipse (circle/sphere) region inside a larger canvas. Optionally writes it to a file and returns statistics, values and a preview.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Canvas size in grid axis order (vertical, horizontal[, depth]). One value is used on every axis. Default [10]",
					},
					"mask_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Size of the mask region. For ellipses the first value is the diameter on every axis. Default [6]",
					},
					"mask_pos": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Position of the mask region's first cell (non-negative). Default [2]",
					},
					"dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Number of axes: 2 or 3. Default 2",
						"enum":        []int{2, 3},
					},
					"shape": map[string]interface{}{
						"type":        "string",
						"description": "Mask shape. Default quad",
						"enum":        []string{"quad", "ellipse"},
					},
					"visible_value": map[string]interface{}{
						"type":        "number",
						"description": "Value inside the mask. Default 1.0",
					},
					"mask_value": map[string]interface{}{
						"type":        "number",
						"description": "Value outside the mask. Default 0.0",
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Swap the visible and mask values",
					},
					"voxel_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Voxel size along x, y, z written to MRC output. One value is used on all axes. Default [1.0]",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path for the mask (.txt, .csv, .mrc, .map, .rec, .png, ...). 3D masks need an MRC extension",
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a base64-encoded PNG preview (middle slice for 3D)",
					},
					"preview_scale": map[string]interface{}{
						"type":        "integer",
						"description": "Preview pixels per grid cell. Default 1",
					},
					"preview_colors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Preview colours for the largest and smallest value, hex or name. Default [\"#FFFFFF\", \"#000000\"]",
					},
					"include_values": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the grid values as text (small grids only)",
					},
				},
			},
		},
		{
			Name:        "mask_apply",
			Description: "Create a mask and multiply it into an image file, writing the masked image. The image must have the same shape as the mask; its voxel size and origin are kept.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Canvas size in grid axis order (vertical, horizontal[, depth]). One value is used on every axis. Default [10]",
					},
					"mask_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Size of the mask region. For ellipses the first value is the diameter on every axis. Default [6]",
					},
					"mask_pos": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Position of the mask region's first cell (non-negative). Default [2]",
					},
					"dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Number of axes: 2 or 3. Default 2",
						"enum":        []int{2, 3},
					},
					"shape": map[string]interface{}{
						"type":        "string",
						"description": "Mask shape. Default quad",
						"enum":        []string{"quad", "ellipse"},
					},
					"visible_value": map[string]interface{}{
						"type":        "number",
						"description": "Value inside the mask. Default 1.0",
					},
					"mask_value": map[string]interface{}{
						"type":        "number",
						"description": "Value outside the mask. Default 0.0",
					},
					"invert": map[string]interface{}{
						"type":        "boolean",
						"description": "Swap the visible and mask values",
					},
					"voxel_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "number"},
						"description": "Voxel size along x, y, z written to MRC output. One value is used on all axes. Default [1.0]",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Optional path for the mask (.txt, .csv, .mrc, .map, .rec, .png, ...). 3D masks need an MRC extension",
					},
					"preview": map[string]interface{}{
						"type":        "boolean",
						"description": "Return a base64-encoded PNG preview (middle slice for 3D)",
					},
					"preview_scale": map[string]interface{}{
						"type":        "integer",
						"description": "Preview pixels per grid cell. Default 1",
					},
					"preview_colors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Preview colours for the largest and smallest value, hex or name. Default [\"#FFFFFF\", \"#000000\"]",
					},
					"input_image": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image to mask (.mrc, .map, .rec, raster or text table)",
					},
					"output_image": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path for the masked image",
					},
				},
				"required": []string{"input_image", "output_image"},
			},
		},
		{
			Name:        "mask_validate",
			Description: "Check that a mask of the given size and position fits its canvas without creating anything. Reports the first axis that does not fit.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Canvas size in grid axis order (vertical, horizontal[, depth]). One value is used on every axis. Default [10]",
					},
					"mask_size": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Size of the mask region. For ellipses the first value is the diameter on every axis. Default [6]",
					},
					"mask_pos": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "integer"},
						"description": "Position of the mask region's first cell (non-negative). Default [2]",
					},
					"dimension": map[string]interface{}{
						"type":        "integer",
						"description": "Number of axes: 2 or 3. Default 2",
						"enum":        []int{2, 3},
					},
					"shape": map[string]interface{}{
						"type":        "string",
						"description": "Mask shape. Default quad",
						"enum":        []string{"quad", "ellipse"},
					},
				},
			},
		},

		// Volumes
		{
			Name:        "volume_info",
			Description: "Load a grid file (MRC, raster image or text table) and report its shape, value range, mean and calibration. MRC files also report the storage mode and label.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "volume_preview",
			Description: "Render a grid file as a base64-encoded PNG. 3D grids are cut along the depth axis. Use region or named_region to zoom in and grid_spacing to add reference lines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the file",
					},
					"scale": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels per grid cell. Default 1",
						"default":     1,
					},
					"colors": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Colours for the largest and smallest value. Default [\"#FFFFFF\", \"#000000\"]",
					},
					"slice": map[string]interface{}{
						"type":        "integer",
						"description": "Depth slice of a 3D grid. Default: middle slice",
					},
					"region": map[string]interface{}{
						"type":        "object",
						"description": "Cells to show: x1,y1 inclusive, x2,y2 exclusive (x = column, y = row)",
						"properties": map[string]interface{}{
							"x1": map[string]interface{}{"type": "integer"},
							"y1": map[string]interface{}{"type": "integer"},
							"x2": map[string]interface{}{"type": "integer"},
							"y2": map[string]interface{}{"type": "integer"},
						},
					},
					"named_region": map[string]interface{}{
						"type":        "string",
						"description": "Named part of the plane instead of region",
						"enum":        []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"},
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Draw reference lines every N cells",
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Reference line colour. Default #FF0000",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
