// Package background estimates image background statistics and derives
// per-scale detection thresholds.
//
// Noise-dominated survey images have no clean "empty" reference area,
// so the background level and noise are estimated from the image itself
// with iterative sigma clipping: pixels far from the current mean are
// discarded and the statistics recomputed until they stabilise. The
// clipped mean and standard deviation convert the raw image into a
// signal-to-noise field, which is what the detection engine thresholds.
//
// Detection thresholds are derived per grid size from a target
// false-positive expectation: the more tiles a grid produces, the
// stricter each individual tile's threshold must be, and the fewer
// statistically independent samples a tile holds (pixels within one
// instrument beam are correlated), the less the tile average suppresses
// noise.
package background
