package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/figprep/figprep/internal/compose"
)

// settleDelay is how long a file must stay quiet after its last write
// event before it is processed, so half-copied files are not picked up.
const settleDelay = 500 * time.Millisecond

// Watch monitors inputDir and crops every image file that is created or
// modified there, writing PNG icons into outputDir. It blocks until the
// context is canceled.
func Watch(ctx context.Context, comp *compose.Compositor, log *zap.SugaredLogger,
	inputDir, outputDir string, opts Options) error {

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(inputDir); err != nil {
		return fmt.Errorf("watch %s: %w", inputDir, err)
	}
	log.Infow("watching for images", "dir", inputDir)

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
	)
	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := pending[path]; ok {
			t.Stop()
		}
		pending[path] = time.AfterFunc(settleDelay, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			processOne(ctx, comp, log, path, outputDir, opts)
		})
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !imageExtensions[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}
			schedule(event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "error", err)
		}
	}
}
