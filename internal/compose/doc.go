// Package compose implements the polygon icon compositor: it turns an
// arbitrary source image into a bordered, rotated, shifted n-sided
// polygon crop.
//
// A single Crop call runs the whole pipeline: ingestion normalizes the
// source, the working canvas is fitted with a quality-preserving Lanczos
// resample, polygon vertices are computed around the (possibly shifted)
// canvas center, the mask rasterizer produces antialiased coverage, and
// the source is composited through it, optionally over a solid border
// ring. Each call owns its working bitmap end to end, so independent
// requests are safe to run in parallel with no coordination.
//
// Parameter validation happens eagerly, before any pixel buffer is
// allocated; a Crop call either returns a fully composited bitmap or
// fails with the upstream error unchanged.
package compose
