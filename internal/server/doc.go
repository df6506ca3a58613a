// Package server exposes the figure-preparation toolkit over a stdio
// JSON-RPC 2.0 tool protocol, so editor and agent clients can drive it
// without linking the library.
//
// # Protocol
//
// The server reads one JSON-RPC request per line on stdin and writes
// responses to stdout. Supported methods:
//   - initialize: protocol handshake
//   - tools/list: enumerate available tools
//   - tools/call: execute a tool with arguments
//   - ping: health check
//
// # Available Tools
//
// Icon creation:
//   - make_hexicon: hexagonal icon crop with optional border
//   - ngon_crop: general n-sided polygon crop
//
// Image modification:
//   - make_opaque: flatten transparency over a background color
//   - convert_image: convert a file to another raster format
//   - image_info: dimensions and alpha mode of an image file
//
// Color utilities:
//   - parse_color: normalize a hex string, name, or channel tuple
//   - dominant_color: extract the representative color of an image
//   - contrasting_color: pick the legible extreme against a reference
//
// # Image Caching
//
// Ingested bitmaps are cached by path for the lifetime of the process,
// so repeated tool calls against the same file skip disk I/O and
// decoding.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the
// Go error string as data; parameter unmarshal failures use -32602.
package server
