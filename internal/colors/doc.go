// Package colors implements the color analysis used by the polygon
// compositor: parsing user-facing color values, extracting a perceptually
// representative color from a bitmap, and choosing a legible contrasting
// color against a reference.
//
// All parsing paths (hex string, recognized name, channel tuple) normalize
// to the same Color value before any arithmetic runs on it. The named
// color table is fixed at init and read-only, so it needs no
// synchronization. Every function here is pure: no I/O, no randomness,
// deterministic output for a fixed input.
package colors
