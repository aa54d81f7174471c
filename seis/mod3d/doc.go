// Package mod3d holds a regional 3-D velocity model on a regular
// (depth, latitude, longitude) grid.
//
// Absolute P and S velocities are stored together with their relative
// perturbation from a 1-D reference model evaluated at the grid depths.
// Queries interpolate trilinearly and clamp to the nearest grid face
// outside the model volume. Model files are MessagePack encoded.
package mod3d
