package imaging

import (
	"context"
	"errors"
	"image/color"
	"os"
	"testing"
)

func TestBitmapCache_LoadAndEvict(t *testing.T) {
	path := writeTestPNG(t, createTestImage(4, 4, color.NRGBA{50, 60, 70, 255}))
	cache := NewBitmapCache(NewNormalizer(nil))

	first, err := cache.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// A second load must return the cached value even after the file is
	// gone.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove test file: %v", err)
	}
	second, err := cache.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached bitmap instance")
	}

	// After eviction the miss hits the filesystem again and fails.
	cache.Evict(path)
	if _, err := cache.Load(context.Background(), path); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after evict", err)
	}
}

func TestBitmapCache_Clear(t *testing.T) {
	path := writeTestPNG(t, createTestImage(2, 2, color.NRGBA{1, 1, 1, 255}))
	cache := NewBitmapCache(NewNormalizer(nil))

	if _, err := cache.Load(context.Background(), path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove test file: %v", err)
	}
	if _, err := cache.Load(context.Background(), path); !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound after clear", err)
	}
}
