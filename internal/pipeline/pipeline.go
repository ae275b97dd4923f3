package pipeline

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/radioastro/sourcefind/internal/background"
	"github.com/radioastro/sourcefind/internal/detect"
)

// Config controls a detection run. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// GridSizes are the tile side lengths to search, in pixels. They
	// are searched smallest first; merge outcomes depend on that order.
	GridSizes []int

	// Overlap is the number of shifted tilings per grid size.
	Overlap int

	// Exhaustive searches the full Overlap×Overlap Cartesian product
	// of offsets instead of the diagonal. Only worthwhile for small
	// grid sizes where precise centering matters.
	Exhaustive bool

	// OverlapFactor is the minimum fractional overlap for two boxes to
	// merge into one region.
	OverlapFactor float64

	// FPRate is the expected number of spurious tile detections
	// tolerated across the whole image, per grid size.
	FPRate float64

	// BeamArea is the instrument's effective resolution footprint in
	// pixels squared; pixels within one beam are treated as one
	// statistically independent sample. Use 1 for uncorrelated pixels.
	BeamArea float64

	// ClipSigma and ClipIter control background sigma clipping.
	ClipSigma float64
	ClipIter  int

	// Workers is the number of concurrent search workers. Values < 1
	// mean sequential; results are identical either way.
	Workers int

	// Logger receives progress and per-region warnings. Nil means
	// slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the standard detection configuration.
func DefaultConfig() Config {
	return Config{
		GridSizes:     []int{4, 8, 16, 32, 64},
		Overlap:       2,
		OverlapFactor: 0.1,
		FPRate:        0.05,
		BeamArea:      1,
		ClipSigma:     3,
		ClipIter:      5,
		Workers:       1,
	}
}

// Source is one detected and measured source.
type Source struct {
	ID      int            `json:"id"`
	Bounds  detect.Box     `json:"bounds"`
	Center  detect.Point   `json:"center"`
	Boxes   int            `json:"boxes"`
	Polygon []detect.Point `json:"polygon,omitempty"`
	Photometry
}

// Result is the outcome of a full detection run.
type Result struct {
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Stats   background.Stats `json:"background"`
	Sources []Source         `json:"sources"`
	Count   int              `json:"count"`

	// Regions are the raw merged regions backing Sources, in the same
	// order. Consumers needing the member boxes (rendering, masking)
	// read these; the JSON output carries only the summary.
	Regions []*detect.Region `json:"-"`
}

// searchJob is one (grid, offset) search unit with its result slot.
type searchJob struct {
	grid    int
	counter *detect.Counter
	ox, oy  int
	slot    int
}

// Run executes a full detection over field, a row-major intensity
// image indexed field[y][x].
//
// Background statistics are estimated with sigma clipping, the field is
// converted to signal-to-noise units, and each configured grid size is
// searched at its own threshold across all of its offsets. Candidate
// boxes are merged smallest grid first, each merged region is traced to
// a polygon, and photometry is measured on the raw field. A region
// whose boundary trace fails to close is kept without a polygon and
// logged, not fatal.
func Run(field [][]float64, cfg Config) (*Result, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	height := len(field)
	width := 0
	if height > 0 {
		width = len(field[0])
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("pipeline: empty field")
	}
	if len(cfg.GridSizes) == 0 {
		return nil, fmt.Errorf("pipeline: no grid sizes configured")
	}

	stats := background.Estimate(field, cfg.ClipSigma, cfg.ClipIter)
	log.Debug("background estimated",
		"mean", stats.Mean, "sigma", stats.Sigma,
		"iterations", stats.Iterations, "clipped", stats.Clipped)
	snr := background.SNR(field, stats)

	grids := append([]int(nil), cfg.GridSizes...)
	sort.Ints(grids)

	// One immutable counter per grid size; shared read-only by every
	// offset worker of that grid.
	var jobs []searchJob
	for _, g := range grids {
		if g > width || g > height {
			log.Warn("grid size exceeds image, skipped", "grid", g)
			continue
		}
		threshold := background.ThresholdForGrid(g, width, height, cfg.FPRate, cfg.BeamArea)
		counter := detect.NewCounter(snr, threshold)
		overlap := min(cfg.Overlap, g)
		if overlap < 1 {
			overlap = 1
		}
		for _, off := range detect.Offsets(g, overlap, cfg.Exhaustive) {
			jobs = append(jobs, searchJob{
				grid:    g,
				counter: counter,
				ox:      off[0],
				oy:      off[1],
				slot:    len(jobs),
			})
		}
		log.Debug("grid scheduled", "grid", g, "threshold", threshold)
	}

	slots := make([][]detect.Box, len(jobs))
	runSearches(jobs, slots, cfg.Workers)

	var boxes []detect.Box
	for _, s := range slots {
		boxes = append(boxes, s...)
	}
	log.Debug("search complete", "candidates", len(boxes))

	regions, err := detect.Merge(boxes, width, height, cfg.OverlapFactor)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	result := &Result{
		Width:   width,
		Height:  height,
		Stats:   stats,
		Regions: regions,
	}
	for _, r := range regions {
		src := Source{
			ID:         r.ID,
			Bounds:     r.Bounds,
			Center:     r.Center(),
			Boxes:      len(r.Boxes),
			Photometry: Measure(r, field, cfg.BeamArea),
		}
		polygon, err := detect.Trace(r)
		if err != nil {
			log.Warn("boundary trace failed, source kept without outline",
				"region", r.ID, "error", err)
		} else {
			src.Polygon = polygon
		}
		result.Sources = append(result.Sources, src)
	}
	result.Count = len(result.Sources)
	return result, nil
}

// runSearches executes every job, filling each job's slot. With fewer
// than two workers the jobs run inline on the calling goroutine;
// otherwise they fan out over a fixed worker pool. Slot order makes the
// two paths indistinguishable.
func runSearches(jobs []searchJob, slots [][]detect.Box, workers int) {
	if workers < 2 {
		for _, j := range jobs {
			slots[j.slot] = detect.Search(j.counter, j.grid, j.ox, j.oy)
		}
		return
	}

	ch := make(chan searchJob)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range ch {
				slots[j.slot] = detect.Search(j.counter, j.grid, j.ox, j.oy)
			}
		}()
	}
	for _, j := range jobs {
		ch <- j
	}
	close(ch)
	wg.Wait()
}
