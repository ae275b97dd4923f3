package background

import (
	"math"
	"testing"
)

func flatField(width, height int, v float64) [][]float64 {
	field := make([][]float64, height)
	for y := range field {
		field[y] = make([]float64, width)
		for x := range field[y] {
			field[y][x] = v
		}
	}
	return field
}

func TestEstimateFlatField(t *testing.T) {
	s := Estimate(flatField(10, 10, 4.5), 3, 5)
	if s.Mean != 4.5 {
		t.Errorf("mean = %v, want 4.5", s.Mean)
	}
	if s.Sigma != 0 {
		t.Errorf("sigma = %v, want 0", s.Sigma)
	}
	if s.Clipped != 0 {
		t.Errorf("clipped = %d pixels on a flat field", s.Clipped)
	}
}

func TestEstimateKnownDistribution(t *testing.T) {
	// Two values in equal proportion: mean 5, stddev 2.
	field := flatField(10, 10, 3)
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			field[y][x] = 7
		}
	}
	s := Estimate(field, 3, 5)
	if math.Abs(s.Mean-5) > 1e-9 {
		t.Errorf("mean = %v, want 5", s.Mean)
	}
	if math.Abs(s.Sigma-2) > 1e-9 {
		t.Errorf("sigma = %v, want 2", s.Sigma)
	}
}

func TestEstimateClipsOutliers(t *testing.T) {
	// Alternating ±1 background with a single huge outlier. Unclipped
	// statistics are dominated by the outlier; clipping must discard it
	// and recover the background spread.
	field := flatField(20, 20, 0)
	for y := range field {
		for x := range field[y] {
			if (x+y)%2 == 0 {
				field[y][x] = 1
			} else {
				field[y][x] = -1
			}
		}
	}
	field[10][10] = 1e6

	unclipped := Estimate(field, 0, 0)
	clipped := Estimate(field, 3, 5)

	if unclipped.Sigma < 100 {
		t.Fatalf("unclipped sigma = %v, expected outlier domination", unclipped.Sigma)
	}
	if clipped.Clipped != 1 {
		t.Errorf("clipped %d pixels, want 1", clipped.Clipped)
	}
	if math.Abs(clipped.Mean) > 0.01 || math.Abs(clipped.Sigma-1) > 0.01 {
		t.Errorf("clipped stats mean=%v sigma=%v, want ~0 and ~1", clipped.Mean, clipped.Sigma)
	}
}

func TestEstimateIgnoresNaN(t *testing.T) {
	field := flatField(4, 4, 2)
	field[0][0] = math.NaN()
	field[3][3] = math.NaN()

	s := Estimate(field, 3, 5)
	if s.Mean != 2 || s.Sigma != 0 {
		t.Errorf("stats with NaN pixels = %+v, want mean 2 sigma 0", s)
	}
}

func TestSNR(t *testing.T) {
	field := [][]float64{{2, 4}, {6, math.NaN()}}
	snr := SNR(field, Stats{Mean: 4, Sigma: 2})

	want := [][]float64{{-1, 0}, {1, 0}}
	for y := range want {
		for x := range want[y] {
			if snr[y][x] != want[y][x] {
				t.Errorf("snr[%d][%d] = %v, want %v", y, x, snr[y][x], want[y][x])
			}
		}
	}
}

func TestSNRZeroSigma(t *testing.T) {
	snr := SNR([][]float64{{5, 5}}, Stats{Mean: 5, Sigma: 0})
	if snr[0][0] != 0 || snr[0][1] != 0 {
		t.Errorf("zero-sigma SNR = %v, want zeros", snr)
	}
}
