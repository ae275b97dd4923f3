package background

import "math"

// Stats holds sigma-clipped background statistics for a field.
type Stats struct {
	// Mean is the clipped background level.
	Mean float64 `json:"mean"`

	// Sigma is the clipped background standard deviation.
	Sigma float64 `json:"sigma"`

	// Iterations is the number of clipping passes performed.
	Iterations int `json:"iterations"`

	// Clipped is the number of pixels discarded by clipping.
	Clipped int `json:"clipped"`
}

// Estimate computes sigma-clipped mean and standard deviation over a
// row-major field.
//
// Each pass discards pixels more than clipSigma standard deviations
// from the current mean, then recomputes both statistics from the
// survivors. Passes stop when no further pixels are discarded or after
// maxIter passes. NaN pixels (blanked image areas) are ignored
// throughout.
//
// Typical values: clipSigma 3, maxIter 5. A clipSigma <= 0 disables
// clipping and returns plain mean and standard deviation.
func Estimate(field [][]float64, clipSigma float64, maxIter int) Stats {
	values := make([]float64, 0, len(field)*cols(field))
	for _, row := range field {
		for _, v := range row {
			if !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}

	mean, sigma := meanStddev(values)
	s := Stats{Mean: mean, Sigma: sigma}
	if clipSigma <= 0 {
		return s
	}

	for s.Iterations < maxIter {
		lo := s.Mean - clipSigma*s.Sigma
		hi := s.Mean + clipSigma*s.Sigma

		kept := values[:0]
		for _, v := range values {
			if v >= lo && v <= hi {
				kept = append(kept, v)
			}
		}
		s.Iterations++
		if len(kept) == len(values) || len(kept) == 0 {
			break
		}
		s.Clipped += len(values) - len(kept)
		values = kept
		s.Mean, s.Sigma = meanStddev(values)
	}
	return s
}

// SNR converts a raw field into signal-to-noise units using clipped
// background statistics: (value - mean) / sigma. With zero sigma (a
// perfectly flat field) the result is zero everywhere; NaN pixels map
// to zero so they can never cross a detection threshold.
func SNR(field [][]float64, s Stats) [][]float64 {
	snr := make([][]float64, len(field))
	for y, row := range field {
		out := make([]float64, len(row))
		for x, v := range row {
			if s.Sigma > 0 && !math.IsNaN(v) {
				out[x] = (v - s.Mean) / s.Sigma
			}
		}
		snr[y] = out
	}
	return snr
}

func cols(field [][]float64) int {
	if len(field) == 0 {
		return 0
	}
	return len(field[0])
}

func meanStddev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(values)))
}
