// Package mask builds binary masks over 2D and 3D grids and applies them to
// images.
//
// A mask is described by a Spec: the canvas it lives in, the size and
// position of the painted region, the region's shape, and the values written
// inside (foreground) and outside (background) the region. Construction is a
// two step affair:
//
//  1. Validate checks that the region fits inside the canvas on every axis.
//  2. Build allocates the canvas and paints the region.
//
// New performs both steps and is what most callers want.
//
// # Axis Convention
//
// Grids are dense and row-major. Vectors describing a canvas, a size or a
// position list their components in grid axis order:
//   - axis 0: vertical (rows, "height")
//   - axis 1: horizontal (columns, "width")
//   - axis 2: depth (3D only)
//
// The last axis varies fastest in memory.
//
// # Shapes
//
//   - Quad: an axis-aligned rectangle (2D) or box (3D). Cells whose index lies
//     in [pos[i], pos[i]+size[i]) on every axis receive the foreground value.
//   - Ellipse: a circle (2D) or sphere (3D) inscribed in the size box. The
//     radius is size[0]/2 for every axis, even when the size box is not
//     square. Files written by earlier releases depend on that, so a
//     non-square size yields a clipped circle rather than a true ellipse.
//
// # Errors
//
// Validate returns a *GeometryError naming the first axis that does not fit.
// Apply returns a *ShapeMismatchError when the mask and image shapes differ.
package mask
