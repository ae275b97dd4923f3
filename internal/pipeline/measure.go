package pipeline

import (
	"math"
	"sort"

	"github.com/radioastro/sourcefind/internal/detect"
)

// Photometry summarises the raw-field flux inside one region's exact
// footprint (the union of its member boxes, not its bounding box).
type Photometry struct {
	// TotalFlux is the sum of pixel values in the footprint.
	TotalFlux float64 `json:"total_flux"`

	// IntegratedFlux is TotalFlux divided by the beam area, the
	// instrument-independent source flux.
	IntegratedFlux float64 `json:"integrated_flux"`

	// PeakFlux is the brightest footprint pixel.
	PeakFlux float64 `json:"peak_flux"`

	// PeakFlux95 is the 95th percentile of footprint pixels, a peak
	// estimate robust against single hot pixels.
	PeakFlux95 float64 `json:"peak_flux_95"`

	// Pixels is the footprint size.
	Pixels int `json:"pixels"`
}

// Measure computes photometry for a merged region over the raw field.
// NaN pixels (blanked areas) inside the footprint are ignored.
func Measure(r *detect.Region, field [][]float64, beamArea float64) Photometry {
	bounds := r.Bounds
	mask := make([][]bool, bounds.Height())
	for i := range mask {
		mask[i] = make([]bool, bounds.Width())
	}
	r.Window(mask, bounds.X1, bounds.Y1)

	var values []float64
	for y, row := range mask {
		fy := bounds.Y1 + y
		if fy < 0 || fy >= len(field) {
			continue
		}
		for x, set := range row {
			if !set {
				continue
			}
			fx := bounds.X1 + x
			if fx < 0 || fx >= len(field[fy]) {
				continue
			}
			if v := field[fy][fx]; !math.IsNaN(v) {
				values = append(values, v)
			}
		}
	}
	if len(values) == 0 {
		return Photometry{}
	}

	var p Photometry
	p.Pixels = len(values)
	p.PeakFlux = values[0]
	for _, v := range values {
		p.TotalFlux += v
		if v > p.PeakFlux {
			p.PeakFlux = v
		}
	}
	if beamArea > 0 {
		p.IntegratedFlux = p.TotalFlux / beamArea
	} else {
		p.IntegratedFlux = p.TotalFlux
	}
	p.PeakFlux95 = percentile(values, 95)
	return p
}

// percentile returns the q-th percentile of values using linear
// interpolation between the two nearest ranks. values may be in any
// order and is not modified.
func percentile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := q / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
