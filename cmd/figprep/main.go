package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/figprep/figprep/internal/compose"
	"github.com/figprep/figprep/internal/config"
	"github.com/figprep/figprep/internal/convert"
	"github.com/figprep/figprep/internal/imaging"
	"github.com/figprep/figprep/internal/server"
	"github.com/figprep/figprep/internal/workflows"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "--version", "-v", "version":
		fmt.Printf("figprep %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	case "--help", "-h", "help":
		printUsage()
		return
	}

	cfg := config.Load("")
	logger := newLogger(cfg.LogLevel)
	defer logger.Sync() //nolint:errcheck

	fetcher := imaging.NewHTTPFetcher(imaging.HTTPFetcherConfig{
		Timeout:   cfg.HTTPTimeout,
		UserAgent: cfg.UserAgent,
	})
	normalizer := imaging.NewNormalizer(fetcher)

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(normalizer, logger)
	case "batch":
		err = runBatch(normalizer, logger, os.Args[2:])
	case "convert":
		err = runConvert(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatalw("command failed", "command", os.Args[1], "error", err)
	}
}

func printUsage() {
	fmt.Println("figprep - figure preparation toolkit")
	fmt.Println()
	fmt.Println("Usage: figprep <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve      Run the stdio JSON-RPC tool server")
	fmt.Println("  batch      Create polygon icons for every image in a directory")
	fmt.Println("  convert    Convert an image file to another raster format")
	fmt.Println("  version    Print version information")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  FIGPREP_LOG_LEVEL=debug              Enable debug logging")
	fmt.Println("  FIGPREP_HTTP_TIMEOUT_SECONDS=30      Remote fetch timeout")
	fmt.Println("  FIGPREP_USER_AGENT=figprep/1.0       Remote fetch user agent")
	fmt.Println()
	fmt.Println("A .env file in the working directory is loaded if present.")
}

// newLogger builds the process logger writing to stderr; stdout belongs
// to the serve command's protocol stream.
func newLogger(level string) *zap.SugaredLogger {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if level == "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.Must(zcfg.Build()).Sugar()
}

func runServe(n *imaging.Normalizer, logger *zap.SugaredLogger) error {
	logger.Debugw("starting tool server", "version", Version, "build_time", BuildTime, "commit", GitCommit)
	return server.New(n, logger).Run()
}

func runBatch(n *imaging.Normalizer, logger *zap.SugaredLogger, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	outputDir := fs.String("output-dir", "hexicons", "output directory")
	width := fs.Int("width", 0, "icon width (0 = square of source's smaller dimension)")
	height := fs.Int("height", 0, "icon height")
	sides := fs.Int("sides", 6, "polygon side count")
	rotation := fs.Float64("rotation", 0, "polygon rotation in degrees, clockwise")
	borderWidth := fs.Int("border-size", 10, "border width in pixels")
	borderColor := fs.String("border-color", "auto", "border color: auto, name, or #RRGGBB")
	padding := fs.Int("padding", 20, "padding in pixels")
	workers := fs.Int("workers", 4, "parallel workers")
	preset := fs.String("preset", "", "YAML preset file overriding the flags above")
	watch := fs.Bool("watch", false, "keep watching the directory for new images")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("batch: expected exactly one input directory, got %d", fs.NArg())
	}
	inputDir := fs.Arg(0)

	var opts workflows.Options
	if *preset != "" {
		p, err := workflows.LoadPreset(*preset)
		if err != nil {
			return err
		}
		opts, err = p.Options()
		if err != nil {
			return err
		}
	} else {
		border, err := compose.ParseBorderColor(*borderColor)
		if err != nil {
			return err
		}
		opts = workflows.Options{
			Sides:        *sides,
			CanvasWidth:  *width,
			CanvasHeight: *height,
			RotationDeg:  *rotation,
			BorderWidth:  *borderWidth,
			BorderColor:  border,
			Padding:      *padding,
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	comp := compose.New(n)
	results, err := workflows.Batch(ctx, comp, logger, inputDir, *outputDir, opts, *workers)
	if err != nil {
		return err
	}

	failures := 0
	for _, r := range results {
		if r.Err != nil {
			failures++
		}
	}
	logger.Infow("batch finished", "total", len(results), "failed", failures)

	if *watch {
		if err := workflows.Watch(ctx, comp, logger, inputDir, *outputDir, opts); err != nil && ctx.Err() == nil {
			return err
		}
	}
	return nil
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	format := fs.String("format", "png", "target format extension")
	keep := fs.Bool("keep", false, "keep the original file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("convert: expected exactly one input file, got %d", fs.NArg())
	}

	path, err := convert.File(fs.Arg(0), *format, convert.Options{RemoveOriginal: !*keep})
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}
