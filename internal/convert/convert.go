// Package convert performs raster format conversion for the non-core
// figure preparation path: decode, flatten transparency when the target
// format cannot carry it, and re-encode next to the source file.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dimaging "github.com/disintegration/imaging"

	"github.com/figprep/figprep/internal/imaging"
)

// ErrUnsupportedFormat indicates a target format the codec cannot encode.
var ErrUnsupportedFormat = errors.New("unsupported target format")

// flattenFormats are the targets without an alpha channel; sources are
// made opaque over white before encoding to them.
var flattenFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"bmp":  true,
}

// Options configures a file conversion.
type Options struct {
	// RemoveOriginal deletes the source file after a successful
	// conversion, unless the target path equals the source path.
	RemoveOriginal bool
}

// File converts the image at sourcePath to targetFormat, writing a
// sibling file with the new extension and returning its path. Formats
// follow the codec's support: jpg, jpeg, png, gif, tif, tiff, bmp.
func File(sourcePath, targetFormat string, opts Options) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(targetFormat, "."))

	encFormat, err := dimaging.FormatFromExtension(format)
	if err != nil {
		return "", fmt.Errorf("convert to %q: %v: %w", targetFormat, err, ErrUnsupportedFormat)
	}

	bmp, err := imaging.NewNormalizer(nil).Normalize(context.Background(), imaging.FromFile(sourcePath))
	if err != nil {
		return "", err
	}

	if flattenFormats[format] {
		bmp = imaging.MakeOpaque(bmp, imaging.White)
	}

	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))
	targetPath := base + "." + format

	if err := dimaging.Save(bmp.NRGBA(), targetPath, dimaging.JPEGQuality(95)); err != nil {
		return "", fmt.Errorf("encode %s as %s: %w", targetPath, encFormat, err)
	}

	if opts.RemoveOriginal && targetPath != sourcePath {
		if err := os.Remove(sourcePath); err != nil {
			return "", fmt.Errorf("remove original %s: %w", sourcePath, err)
		}
	}
	return targetPath, nil
}
