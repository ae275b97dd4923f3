package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/joho/godotenv"

	"github.com/radioastro/sourcefind/internal/pipeline"
	"github.com/radioastro/sourcefind/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("sourcefind %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	// Optional .env for deployment defaults; absence is not an error.
	_ = godotenv.Load()

	var (
		grids         = flag.String("grids", "4,8,16,32,64", "comma-separated tile sizes to search, in pixels")
		overlap       = flag.Int("overlap", 2, "shifted tilings per grid size")
		exhaustive    = flag.Bool("exhaustive", false, "search the full offset grid instead of the diagonal")
		overlapFactor = flag.Float64("overlap-factor", 0.1, "minimum fractional overlap for merging boxes")
		fpRate        = flag.Float64("fp-rate", 0.05, "tolerated spurious detections per image per grid size")
		beamArea      = flag.Float64("beam-area", 1, "correlated-pixel footprint in px^2 (1 = independent pixels)")
		blur          = flag.Float64("blur", 0, "Gaussian blur radius applied before detection (0 = off)")
		clipSigma     = flag.Float64("clip-sigma", 3, "sigma-clipping bound for background estimation")
		clipIter      = flag.Int("clip-iter", 5, "maximum sigma-clipping iterations")
		workers       = flag.Int("workers", 1, "concurrent search workers")
		overlayPath   = flag.String("overlay", "", "write an annotated copy of the input to this file")
		showBoxes     = flag.Bool("boxes", false, "include member boxes in the overlay")
		cutoutDir     = flag.String("cutouts", "", "write per-source cutout images into this directory")
		margin        = flag.Int("margin", 3, "cutout footprint dilation in pixels")
		scale         = flag.Float64("scale", 1, "cutout scale factor")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "sourcefind - multi-scale source detection for noisy images\n\n")
		fmt.Fprintf(os.Stderr, "Usage: sourcefind [options] <image>\n\n")
		fmt.Fprintf(os.Stderr, "Detection results are written to stdout as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables:\n")
		fmt.Fprintf(os.Stderr, "  SOURCEFIND_LOG_LEVEL=debug|info|warn|error\n")
	}
	flag.Parse()

	log := newLogger(os.Getenv("SOURCEFIND_LOG_LEVEL"))
	slog.SetDefault(log)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	input := flag.Arg(0)

	cfg := pipeline.DefaultConfig()
	cfg.Overlap = *overlap
	cfg.Exhaustive = *exhaustive
	cfg.OverlapFactor = *overlapFactor
	cfg.FPRate = *fpRate
	cfg.BeamArea = *beamArea
	cfg.ClipSigma = *clipSigma
	cfg.ClipIter = *clipIter
	cfg.Workers = *workers
	cfg.Logger = log

	sizes, err := parseGrids(*grids)
	if err != nil {
		log.Error("invalid -grids", "value", *grids, "error", err)
		os.Exit(2)
	}
	cfg.GridSizes = sizes

	img, err := imaging.Open(input)
	if err != nil {
		log.Error("failed to open image", "path", input, "error", err)
		os.Exit(1)
	}

	log.Info("detection started", "image", input,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy(),
		"grids", sizes, "version", Version)

	field := pipeline.FieldFromImage(img, *blur)
	result, err := pipeline.Run(field, cfg)
	if err != nil {
		log.Error("detection failed", "error", err)
		os.Exit(1)
	}
	log.Info("detection complete", "sources", result.Count,
		"background_sigma", result.Stats.Sigma)

	if *overlayPath != "" {
		out, err := render.Overlay(img, result, *showBoxes)
		if err != nil {
			log.Error("overlay failed", "error", err)
			os.Exit(1)
		}
		if err := imaging.Save(out.Image, *overlayPath); err != nil {
			log.Error("failed to save overlay", "path", *overlayPath, "error", err)
			os.Exit(1)
		}
		log.Info("overlay written", "path", *overlayPath)
	}

	if *cutoutDir != "" {
		if err := writeCutouts(img, result, *cutoutDir, *margin, *scale, log); err != nil {
			log.Error("cutouts failed", "error", err)
			os.Exit(1)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Error("failed to encode results", "error", err)
		os.Exit(1)
	}
}

func writeCutouts(img image.Image, result *pipeline.Result, dir string, margin int, scale float64, log *slog.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	for _, r := range result.Regions {
		out, err := render.Cutout(img, r, margin, scale)
		if err != nil {
			return fmt.Errorf("source %d: %w", r.ID, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("source_%03d.png", r.ID))
		if err := imaging.Save(out.Image, path); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
		log.Debug("cutout written", "source", r.ID, "path", path)
	}
	log.Info("cutouts written", "count", len(result.Regions), "dir", dir)
	return nil
}

func parseGrids(s string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("grid size %q: %w", part, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("grid size %d: must be positive", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no grid sizes")
	}
	return sizes, nil
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
