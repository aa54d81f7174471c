// Package interp provides the interpolation primitives used to move samples
// between time, depth and geographic grids.
//
// Available methods:
//
//   - [Linear]:    piecewise-linear interpolation over strictly increasing
//     nodes, with explicit out-of-range reporting instead of extrapolation
//   - [Monotone]:  reduces scattered (x, y) pairs to a strictly increasing
//     node set suitable for [NewLinear]
//   - [Grid3]:     trilinear interpolation on a regular 3-D grid with
//     nearest-edge clamping outside the grid
//   - [Hermite4]:  4-point cubic Hermite, used for sub-sample peak refinement
package interp
