package background

import "math"

// ThresholdForGrid derives the per-pixel SNR threshold for one grid
// size from a target false-positive expectation.
//
// A tile becomes a candidate when at least half of its pixels exceed
// the threshold. For Gaussian noise the above-threshold count in a
// tile of n independent samples is binomial with per-pixel tail
// probability p(t), so the spurious-detection probability is
// P(count >= n/2). fpRate is the expected number of spurious tiles
// tolerated over the whole image; dividing it across the
// (width/grid) × (height/grid) tiles gives the per-tile budget, and
// inverting the normal approximation of the binomial (variance bounded
// by n/4) yields the pixel tail probability
//
//	p = 1/2 - z / (2*sqrt(n))
//
// where z is the standard normal upper quantile of the per-tile
// budget. The threshold is the normal upper quantile of p.
//
// n is grid²/beamArea: pixels within one instrument beam are
// correlated and count as a single independent sample. beamArea is the
// beam footprint in pixels²; values <= 1 mean every pixel is
// independent. Larger grids hold more samples, tolerate a pixel tail
// probability closer to one half, and so get lower thresholds; that
// is what keeps the multi-scale search uniformly sensitive to both
// compact and extended sources.
func ThresholdForGrid(grid, width, height int, fpRate, beamArea float64) float64 {
	tiles := (width / grid) * (height / grid)
	if tiles < 1 {
		tiles = 1
	}

	budget := fpRate / float64(tiles)
	// Keep the per-tile budget meaningful: a floor avoids
	// Erfinv(1) = +Inf on a zero rate, the ceiling keeps z positive.
	if budget >= 0.5 {
		budget = 0.4999
	}
	if budget < 1e-12 {
		budget = 1e-12
	}
	z := normalUpperQuantile(budget)

	samples := float64(grid*grid) / math.Max(beamArea, 1)
	if samples < 1 {
		samples = 1
	}

	p := 0.5 - z/(2*math.Sqrt(samples))
	if p < 1e-12 {
		p = 1e-12
	}
	return normalUpperQuantile(p)
}

// normalUpperQuantile returns z such that a standard normal variable
// exceeds z with probability p: z = sqrt(2) * erfinv(1 - 2p).
func normalUpperQuantile(p float64) float64 {
	return math.Sqrt2 * math.Erfinv(1-2*p)
}
