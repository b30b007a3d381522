// Package field evaluates the scalar potential Σ q/d of the particle store,
// either at a single point or over a raster of pixel samples.
//
// Three strategies trade accuracy for speed:
//
//   - [Precise]: direct sum over every particle for every sample
//   - [Bilinear]: exact sum for particles near a patch, bilinear
//     interpolation of the far field from the patch corners
//   - [BarnesHut]: per-patch source lists gathered from a quadtree
//
// Rasters are split into square patches processed concurrently. The particle
// store is only read while a raster is being filled.
package field
