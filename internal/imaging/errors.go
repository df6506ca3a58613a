package imaging

import "errors"

// Sentinel errors returned by the ingestion layer. They are always wrapped
// with context describing the failing input; classify with errors.Is.
var (
	// ErrNotFound indicates a file path that does not resolve to a
	// readable file.
	ErrNotFound = errors.New("image not found")

	// ErrDecode indicates bytes that could not be decoded as an image,
	// neither directly nor after base64 decoding.
	ErrDecode = errors.New("undecodable image data")

	// ErrShape indicates a pixel array whose shape is not
	// (height, width, channels) with 3 or 4 channels.
	ErrShape = errors.New("invalid pixel array shape")

	// ErrFetch indicates a remote fetch that failed or returned a
	// non-success status or empty body.
	ErrFetch = errors.New("image fetch failed")
)
