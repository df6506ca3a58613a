package workflows

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/figprep/figprep/internal/compose"
	"github.com/figprep/figprep/internal/imaging"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 40, G: 90, B: 160, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func testCompositor() *compose.Compositor {
	return compose.New(imaging.NewNormalizer(nil))
}

func TestBatch_ProcessesDirectory(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "icons")

	writePNG(t, filepath.Join(inputDir, "b.png"), 64, 64)
	writePNG(t, filepath.Join(inputDir, "a.png"), 64, 64)
	// Non-image files are skipped entirely.
	if err := os.WriteFile(filepath.Join(inputDir, "notes.txt"), []byte("skip"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}

	opts := Options{Sides: 6, CanvasWidth: 32, CanvasHeight: 32}
	results, err := Batch(context.Background(), testCompositor(), zap.NewNop().Sugar(),
		inputDir, outputDir, opts, 2)
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// Results come back sorted by input path.
	if filepath.Base(results[0].Input) != "a.png" || filepath.Base(results[1].Input) != "b.png" {
		t.Errorf("result order: %s, %s", results[0].Input, results[1].Input)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected error: %v", r.Input, r.Err)
			continue
		}
		if _, err := os.Stat(r.Output); err != nil {
			t.Errorf("output %s missing: %v", r.Output, err)
		}
	}
}

func TestBatch_RecordsPerFileFailures(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	writePNG(t, filepath.Join(inputDir, "good.png"), 48, 48)
	if err := os.WriteFile(filepath.Join(inputDir, "broken.png"), []byte("not a png"), 0o644); err != nil {
		t.Fatalf("write broken: %v", err)
	}

	opts := Options{Sides: 6}
	results, err := Batch(context.Background(), testCompositor(), zap.NewNop().Sugar(),
		inputDir, outputDir, opts, 1)
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !errors.Is(results[0].Err, imaging.ErrDecode) {
		t.Errorf("broken.png: got %v, want ErrDecode", results[0].Err)
	}
	if results[1].Err != nil {
		t.Errorf("good.png: unexpected error: %v", results[1].Err)
	}
}

func TestBatch_MissingInputDir(t *testing.T) {
	_, err := Batch(context.Background(), testCompositor(), zap.NewNop().Sugar(),
		filepath.Join(t.TempDir(), "nope"), t.TempDir(), Options{Sides: 6}, 1)
	if err == nil {
		t.Fatal("expected error for missing input dir")
	}
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	data := []byte("sides: 8\nwidth: 128\nheight: 128\nborder_width: 4\nborder_color: \"#FF0000\"\npadding: 6\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if p.Sides != 8 || p.Width != 128 || p.BorderWidth != 4 || p.Padding != 6 {
		t.Errorf("preset = %+v", p)
	}

	opts, err := p.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if opts.BorderColor.Auto() {
		t.Error("expected fixed border color")
	}
	if opts.BorderColor.Fixed().Hex() != "#FF0000" {
		t.Errorf("border color = %s, want #FF0000", opts.BorderColor.Fixed().Hex())
	}
}

func TestLoadPreset_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte("width: 64\nheight: 64\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if p.Sides != 6 {
		t.Errorf("default sides = %d, want 6", p.Sides)
	}
	opts, err := p.Options()
	if err != nil {
		t.Fatalf("Options failed: %v", err)
	}
	if !opts.BorderColor.Auto() {
		t.Error("default border color should be automatic")
	}
}

func TestLoadPreset_BadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte("border_color: blurple\n"), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset failed: %v", err)
	}
	if _, err := p.Options(); err == nil {
		t.Error("expected error for unknown border color")
	}
}
