// Package imaging renders masks and masked images as colour previews.
//
// A preview is a 2D picture of a grid: 2D grids are drawn as they are, 3D
// grids are cut along the depth axis (axis 2) and a single slice is drawn.
// Values are mapped onto a colour ramp running from a low colour (the
// smallest value in the grid) to a high colour (the largest), blended in
// CIE-Lab so that intermediate values in masked images stay perceptually
// even.
//
// # Coordinate System
//
// Preview pixels follow the image convention used throughout this package:
//   - X: column index (grid axis 1), increasing rightward
//   - Y: row index (grid axis 0), increasing downward
//   - For regions, (X1,Y1) is inclusive (top-left), (X2,Y2) is exclusive
//
// Regions and grid spacing are given in grid cells; both are applied before
// the preview is scaled up.
//
// # Output
//
// Preview returns the picture as a base64-encoded PNG, ready to be embedded
// in a JSON response. SavePreview writes it to disk in the format implied by
// the file extension.
package imaging
