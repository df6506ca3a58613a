package imaging

import (
	"context"
	"sync"
)

// BitmapCache provides thread-safe caching of ingested bitmaps so repeated
// tool calls against the same path avoid redundant disk reads and decodes.
//
// Cached bitmaps stay in memory until Evict or Clear. Long-running
// processes handling many images should clear periodically to bound
// memory growth. Callers receive the shared cached value and must Clone
// before mutating.
type BitmapCache struct {
	mu      sync.RWMutex
	bitmaps map[string]*Bitmap

	normalizer *Normalizer
}

// NewBitmapCache creates an empty cache that ingests misses through n.
func NewBitmapCache(n *Normalizer) *BitmapCache {
	return &BitmapCache{
		bitmaps:    make(map[string]*Bitmap),
		normalizer: n,
	}
}

// Load returns the cached bitmap for path, ingesting it on a miss.
// The cache key is the exact path string; relative and absolute paths to
// the same file are distinct entries.
func (c *BitmapCache) Load(ctx context.Context, path string) (*Bitmap, error) {
	c.mu.RLock()
	if bmp, ok := c.bitmaps[path]; ok {
		c.mu.RUnlock()
		return bmp, nil
	}
	c.mu.RUnlock()

	bmp, err := c.normalizer.Normalize(ctx, FromString(path))
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.bitmaps[path] = bmp
	c.mu.Unlock()

	return bmp, nil
}

// Clear removes all cached bitmaps.
func (c *BitmapCache) Clear() {
	c.mu.Lock()
	c.bitmaps = make(map[string]*Bitmap)
	c.mu.Unlock()
}

// Evict removes a single cached bitmap by its exact path key.
func (c *BitmapCache) Evict(path string) {
	c.mu.Lock()
	delete(c.bitmaps, path)
	c.mu.Unlock()
}
