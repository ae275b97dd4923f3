package pipeline

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/radioastro/sourcefind/internal/detect"
)

func grayTestImage(width, height int, value uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := color.RGBA{value, value, value, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func rampField(width, height int) [][]float64 {
	field := make([][]float64, height)
	for y := range field {
		field[y] = make([]float64, width)
		for x := range field[y] {
			field[y][x] = float64(y*width + x)
		}
	}
	return field
}

func TestMeasureSingleBox(t *testing.T) {
	field := rampField(10, 10)
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(2, 3, 4, 5)},
		Bounds: detect.NewBox(2, 3, 4, 5),
	}

	// Footprint pixels: (2,3) (3,3) (2,4) (3,4) = 32, 33, 42, 43.
	p := Measure(r, field, 2)
	if p.Pixels != 4 {
		t.Errorf("Pixels = %d, want 4", p.Pixels)
	}
	if p.TotalFlux != 150 {
		t.Errorf("TotalFlux = %v, want 150", p.TotalFlux)
	}
	if p.IntegratedFlux != 75 {
		t.Errorf("IntegratedFlux = %v, want 75", p.IntegratedFlux)
	}
	if p.PeakFlux != 43 {
		t.Errorf("PeakFlux = %v, want 43", p.PeakFlux)
	}
}

// Overlapping member boxes must not double count the shared pixels.
func TestMeasureOverlappingBoxesCountedOnce(t *testing.T) {
	field := rampField(10, 10)
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(0, 0, 3, 3), detect.NewBox(2, 0, 5, 3)},
		Bounds: detect.NewBox(0, 0, 5, 3),
	}

	p := Measure(r, field, 1)
	if p.Pixels != 15 {
		t.Errorf("Pixels = %d, want 15", p.Pixels)
	}
	var want float64
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			want += field[y][x]
		}
	}
	if p.TotalFlux != want {
		t.Errorf("TotalFlux = %v, want %v", p.TotalFlux, want)
	}
}

func TestMeasureIgnoresNaN(t *testing.T) {
	field := rampField(10, 10)
	field[3][3] = math.NaN()
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(2, 2, 5, 5)},
		Bounds: detect.NewBox(2, 2, 5, 5),
	}

	p := Measure(r, field, 1)
	if p.Pixels != 8 {
		t.Errorf("Pixels = %d, want 8 with one blanked pixel", p.Pixels)
	}
	if math.IsNaN(p.TotalFlux) {
		t.Error("TotalFlux is NaN")
	}
}

func TestMeasureClipsToField(t *testing.T) {
	field := rampField(5, 5)
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(3, 3, 8, 8)},
		Bounds: detect.NewBox(3, 3, 8, 8),
	}

	p := Measure(r, field, 1)
	if p.Pixels != 4 {
		t.Errorf("Pixels = %d, want the 4 in-field pixels", p.Pixels)
	}
}

func TestMeasureEmptyFootprint(t *testing.T) {
	field := rampField(5, 5)
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(10, 10, 12, 12)},
		Bounds: detect.NewBox(10, 10, 12, 12),
	}

	if p := Measure(r, field, 1); p != (Photometry{}) {
		t.Errorf("Measure outside the field = %+v, want zero value", p)
	}
}

func TestMeasurePeak95RejectsHotPixel(t *testing.T) {
	field := make([][]float64, 10)
	for y := range field {
		field[y] = make([]float64, 10)
		for x := range field[y] {
			field[y][x] = 5
		}
	}
	field[4][4] = 10000

	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(0, 0, 10, 10)},
		Bounds: detect.NewBox(0, 0, 10, 10),
	}
	p := Measure(r, field, 1)
	if p.PeakFlux != 10000 {
		t.Errorf("PeakFlux = %v, want 10000", p.PeakFlux)
	}
	// rank 0.95*99 = 94.05 sits between two plateau values.
	if math.Abs(p.PeakFlux95-5) > 1e-9 {
		t.Errorf("PeakFlux95 = %v, want 5", p.PeakFlux95)
	}
}

func TestPercentileInterpolates(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}
	// rank 0.95*4 = 3.8: 0.2*4 + 0.8*100.
	got := percentile(values, 95)
	if math.Abs(got-80.8) > 1e-9 {
		t.Errorf("percentile = %v, want 80.8", got)
	}

	if got := percentile([]float64{7}, 95); got != 7 {
		t.Errorf("single-value percentile = %v, want 7", got)
	}
	if got := percentile([]float64{1, 3}, 50); got != 2 {
		t.Errorf("median of {1,3} = %v, want 2", got)
	}
}
