// Package workflows orchestrates the compositor over whole directories:
// one-shot batch runs and a watch mode that picks up files as they land.
package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	dimaging "github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/figprep/figprep/internal/compose"
	"github.com/figprep/figprep/internal/imaging"
)

// imageExtensions are the inputs a batch run considers.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Options are the per-image crop settings a batch run applies uniformly.
type Options struct {
	Sides        int
	CanvasWidth  int
	CanvasHeight int
	RotationDeg  float64
	ShiftX       int
	ShiftY       int
	BorderWidth  int
	BorderColor  compose.BorderColor
	Padding      int
}

// Request builds the compositor request for one input file.
func (o Options) Request(path string) compose.CropRequest {
	return compose.CropRequest{
		Source:       imaging.FromFile(path),
		CanvasWidth:  o.CanvasWidth,
		CanvasHeight: o.CanvasHeight,
		Sides:        o.Sides,
		RotationDeg:  o.RotationDeg,
		ShiftX:       o.ShiftX,
		ShiftY:       o.ShiftY,
		Border:       compose.BorderSpec{Width: o.BorderWidth, Color: o.BorderColor},
		Padding:      o.Padding,
	}
}

// Result records the outcome for one input file.
type Result struct {
	Input  string
	Output string
	Err    error
}

// Batch crops every image in inputDir and writes the results as PNG files
// into outputDir. Each file is an independent request, so the work is
// dispatched to a fixed pool of workers with no shared mutable state.
// Per-file failures are recorded in the results, not fatal; the returned
// error covers setup problems only (unreadable input dir, output dir
// creation).
func Batch(ctx context.Context, comp *compose.Compositor, log *zap.SugaredLogger,
	inputDir, outputDir string, opts Options, workers int) ([]Result, error) {

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir %s: %w", inputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", outputDir, err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		inputs = append(inputs, filepath.Join(inputDir, entry.Name()))
	}
	sort.Strings(inputs)

	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	resultCh := make(chan Result, len(inputs))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				resultCh <- processOne(ctx, comp, log, path, outputDir, opts)
			}
		}()
	}

	for _, path := range inputs {
		select {
		case jobs <- path:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()
	close(resultCh)

	results := make([]Result, 0, len(inputs))
	for r := range resultCh {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Input < results[j].Input })
	return results, nil
}

// processOne crops a single file and saves the PNG next to its siblings
// in outputDir.
func processOne(ctx context.Context, comp *compose.Compositor, log *zap.SugaredLogger,
	path, outputDir string, opts Options) Result {

	bmp, err := comp.Crop(ctx, opts.Request(path))
	if err != nil {
		log.Warnw("crop failed", "input", path, "error", err)
		return Result{Input: path, Err: err}
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(outputDir, base+".png")
	if err := dimaging.Save(bmp.NRGBA(), outPath); err != nil {
		log.Warnw("save failed", "output", outPath, "error", err)
		return Result{Input: path, Err: fmt.Errorf("save %s: %w", outPath, err)}
	}

	log.Infow("created icon", "input", path, "output", outPath)
	return Result{Input: path, Output: outPath}
}
