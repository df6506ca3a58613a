// Package imaging provides the canonical bitmap representation and the
// ingestion layer that normalizes heterogeneous image inputs into it.
//
// Every pipeline stage downstream of ingestion operates on exactly one
// type, Bitmap: an RGBA pixel grid with explicit dimensions and an alpha
// channel that is always present (synthesized as fully opaque when the
// source had none). Inputs may arrive as file paths, decoded image.Image
// values, raw encoded bytes (optionally base64-encoded), 3-dimensional
// pixel arrays, or remote URLs; each is modeled as a Source variant and
// dispatched exactly once, at the ingestion boundary.
//
// # Ownership
//
// Ingestion copies pixel data into a freshly allocated buffer, so a Bitmap
// never aliases caller-owned memory. Stages that modify pixels work on a
// Clone. A Bitmap is therefore safe to share read-only across goroutines;
// concurrent crop requests each own an independent working copy.
//
// # Error Handling
//
// Failures are reported through the sentinel errors in this package
// (ErrNotFound, ErrDecode, ErrShape, ErrFetch), wrapped with input context.
// Use errors.Is to classify them. Collaborator failures (file system, HTTP
// fetch, codec) surface unchanged with the originating cause attached;
// ingestion never retries and never writes to disk.
package imaging
