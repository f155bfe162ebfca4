// Package volume reads and writes the grids produced by package mask.
//
// Three families of files are supported, chosen by file extension:
//
//   - MRC volumes (.mrc, .map, .rec, optionally gzip-compressed with a
//     trailing .gz). Both 2D and 3D grids, with spatial calibration.
//   - Raster images (.png, .jpg, .jpeg, .gif, .bmp, .tif, .tiff). 2D only;
//     colour inputs are reduced to luminance in [0, 1].
//   - Text tables (anything else). 2D only; one row per line, values
//     separated by whitespace, written with four significant digits.
//
// # MRC Layout
//
// Volumes follow the MRC2014 layout: a 1024-byte header, an optional
// extended header of NSYMBT bytes, then NX*NY*NZ values with X varying
// fastest. A grid of shape (s0, s1, s2) is stored with NZ=s0, NY=s1, NX=s2;
// a 2D grid (s0, s1) is stored as a single section with NZ=1 and space group
// 0, and loads back as 2D. Reading accepts modes 0, 1, 2 and 6 in either
// byte order; writing always produces little-endian mode 2 (float32).
//
// # Calibration
//
// Calibration carries the voxel size (X, Y, Z order, units per voxel) and the
// origin offset (NXSTART, NYSTART, NZSTART). Files without calibration, and
// non-MRC files, use DefaultCalibration.
//
// # Errors
//
// Failures to open, decode or write a file are returned as *IOError.
package volume
