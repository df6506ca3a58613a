package imaging

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Source is one variant of the inputs ingestion accepts. Construct a
// value with FromFile, FromImage, FromBytes, FromPixels, or FromURL and
// hand it to Normalizer.Normalize; dispatch happens exactly once, here.
type Source interface {
	normalize(ctx context.Context, f Fetcher) (*Bitmap, error)
}

// Normalizer converts any Source into the canonical Bitmap. The Fetcher
// collaborator is injected explicitly so remote ingestion carries no
// ambient configuration.
type Normalizer struct {
	fetcher Fetcher
}

// NewNormalizer builds a Normalizer. A nil fetcher is valid: FromURL
// sources will then fail with ErrFetch.
func NewNormalizer(fetcher Fetcher) *Normalizer {
	return &Normalizer{fetcher: fetcher}
}

// Normalize produces a freshly allocated Bitmap from src. The context is
// only consulted by sources that block (remote URLs).
func (n *Normalizer) Normalize(ctx context.Context, src Source) (*Bitmap, error) {
	if src == nil {
		return nil, fmt.Errorf("normalize: nil source: %w", ErrDecode)
	}
	return src.normalize(ctx, n.fetcher)
}

// FromFile ingests a local image file.
func FromFile(path string) Source { return fileSource(path) }

// FromImage ingests an already-decoded image. The pixels are copied, so
// the caller may keep mutating img afterwards.
func FromImage(img image.Image) Source { return imageSource{img} }

// FromBytes ingests an encoded image buffer. Plain binary data is tried
// first; if that fails the buffer is treated as base64 text and decoded
// again.
func FromBytes(data []byte) Source { return bytesSource(data) }

// FromString ingests a string input, dispatching on its form: URLs go
// through the fetcher, everything else is treated as a file path.
func FromString(s string) Source {
	if IsURL(s) {
		return FromURL(s)
	}
	return FromFile(s)
}

// FromPixels ingests a 3-dimensional pixel array shaped
// (height, width, channels) with 3 or 4 eight-bit channels per pixel.
func FromPixels(pixels [][][]uint8) Source { return pixelSource(pixels) }

// FromURL ingests a remote image over the Normalizer's Fetcher.
func FromURL(url string) Source { return urlSource(url) }

// IsURL reports whether s looks like a fetchable http(s) URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

type fileSource string

func (s fileSource) normalize(_ context.Context, _ Fetcher) (*Bitmap, error) {
	data, err := os.ReadFile(string(s))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", string(s), ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %v: %w", string(s), err, ErrNotFound)
	}
	img, err := decodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", string(s), err)
	}
	return BitmapFromImage(img), nil
}

type imageSource struct{ img image.Image }

func (s imageSource) normalize(context.Context, Fetcher) (*Bitmap, error) {
	if s.img == nil {
		return nil, fmt.Errorf("nil image handle: %w", ErrDecode)
	}
	return BitmapFromImage(s.img), nil
}

type bytesSource []byte

func (s bytesSource) normalize(context.Context, Fetcher) (*Bitmap, error) {
	img, err := decodeBytes(s)
	if err == nil {
		return BitmapFromImage(img), nil
	}

	// Not binary image data; the buffer may be base64 text.
	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(s)))
	n, b64err := base64.StdEncoding.Decode(decoded, bytes.TrimSpace(s))
	if b64err != nil {
		return nil, fmt.Errorf("decode %d-byte buffer: %w", len(s), err)
	}
	img, err = decodeBytes(decoded[:n])
	if err != nil {
		return nil, fmt.Errorf("decode base64 buffer: %w", err)
	}
	return BitmapFromImage(img), nil
}

type pixelSource [][][]uint8

func (s pixelSource) normalize(context.Context, Fetcher) (*Bitmap, error) {
	height := len(s)
	if height == 0 || len(s[0]) == 0 {
		return nil, fmt.Errorf("empty pixel array: %w", ErrShape)
	}
	width := len(s[0])
	channels := len(s[0][0])
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("pixel array has %d channels, want 3 or 4: %w", channels, ErrShape)
	}

	bmp := NewBitmap(width, height)
	opaque := true
	for y, row := range s {
		if len(row) != width {
			return nil, fmt.Errorf("ragged pixel array: row %d has width %d, want %d: %w", y, len(row), width, ErrShape)
		}
		for x, px := range row {
			if len(px) != channels {
				return nil, fmt.Errorf("ragged pixel array: pixel (%d,%d) has %d channels, want %d: %w", x, y, len(px), channels, ErrShape)
			}
			c := color.NRGBA{R: px[0], G: px[1], B: px[2], A: 255}
			if channels == 4 {
				c.A = px[3]
				if c.A != 255 {
					opaque = false
				}
			}
			bmp.Set(x, y, c)
		}
	}
	bmp.opaque = channels == 3 || opaque
	return bmp, nil
}

type urlSource string

func (s urlSource) normalize(ctx context.Context, f Fetcher) (*Bitmap, error) {
	if f == nil {
		return nil, fmt.Errorf("fetch %s: no fetcher configured: %w", string(s), ErrFetch)
	}
	body, err := f.Fetch(ctx, string(s))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %v: %w", string(s), err, ErrFetch)
	}
	img, err := decodeBytes(body)
	if err != nil {
		return nil, fmt.Errorf("decode response of %s: %v: %w", string(s), err, ErrFetch)
	}
	return BitmapFromImage(img), nil
}

// decodeBytes decodes an encoded image buffer, naming the sniffed content
// type in the error when decoding fails.
func decodeBytes(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		detected := mimetype.Detect(data)
		return nil, fmt.Errorf("decode %s data: %v: %w", detected.String(), err, ErrDecode)
	}
	return img, nil
}
