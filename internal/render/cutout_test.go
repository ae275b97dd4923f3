package render

import (
	"image/color"
	"testing"

	"github.com/radioastro/sourcefind/internal/detect"
)

func lRegion() *detect.Region {
	return &detect.Region{
		ID:     3,
		Boxes:  []detect.Box{detect.NewBox(10, 10, 20, 15), detect.NewBox(10, 10, 15, 20)},
		Bounds: detect.NewBox(10, 10, 20, 20),
	}
}

func TestCutoutBlanksOutsideFootprint(t *testing.T) {
	img := whiteImage(30, 30)

	out, err := Cutout(img, lRegion(), 0, 1)
	if err != nil {
		t.Fatalf("Cutout failed: %v", err)
	}
	if out.Width != 10 || out.Height != 10 {
		t.Fatalf("cutout size = %dx%d, want 10x10", out.Width, out.Height)
	}
	if out.RegionID != 3 {
		t.Errorf("region ID = %d, want 3", out.RegionID)
	}

	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	// Local (2,2) = absolute (12,12), inside both boxes.
	if got := out.Image.NRGBAAt(2, 2); got != white {
		t.Errorf("footprint pixel = %v, want white", got)
	}
	// Local (8,8) = absolute (18,18), inside the bounding box but
	// outside the L footprint.
	if got := out.Image.NRGBAAt(8, 8); got != black {
		t.Errorf("notch pixel = %v, want blanked", got)
	}
}

func TestCutoutMarginDilates(t *testing.T) {
	img := whiteImage(30, 30)

	out, err := Cutout(img, lRegion(), 2, 1)
	if err != nil {
		t.Fatalf("Cutout failed: %v", err)
	}
	// Bounds (10,10)-(20,20) grown by 2 on every side.
	if out.Width != 14 || out.Height != 14 {
		t.Fatalf("cutout size = %dx%d, want 14x14", out.Width, out.Height)
	}

	white := color.NRGBA{255, 255, 255, 255}
	black := color.NRGBA{0, 0, 0, 255}
	// Absolute (21,12) sits 2 px right of the wide box; two dilation
	// passes reach it. Crop origin is (8,8).
	if got := out.Image.NRGBAAt(13, 4); got != white {
		t.Errorf("dilated pixel = %v, want white", got)
	}
	// Absolute (8,8) is 4 steps from the nearest footprint pixel.
	if got := out.Image.NRGBAAt(0, 0); got != black {
		t.Errorf("far corner pixel = %v, want blanked", got)
	}
}

func TestCutoutScale(t *testing.T) {
	img := whiteImage(30, 30)

	out, err := Cutout(img, lRegion(), 0, 2)
	if err != nil {
		t.Fatalf("Cutout failed: %v", err)
	}
	if out.Width != 20 || out.Height != 20 {
		t.Errorf("scaled cutout size = %dx%d, want 20x20", out.Width, out.Height)
	}
}

func TestCutoutOutsideImage(t *testing.T) {
	img := whiteImage(30, 30)
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(40, 40, 50, 50)},
		Bounds: detect.NewBox(40, 40, 50, 50),
	}
	if _, err := Cutout(img, r, 0, 1); err == nil {
		t.Error("Cutout of an off-image region succeeded")
	}
}

func TestCutoutClipsToImageEdge(t *testing.T) {
	img := whiteImage(30, 30)
	r := &detect.Region{
		ID:     1,
		Boxes:  []detect.Box{detect.NewBox(24, 24, 30, 30)},
		Bounds: detect.NewBox(24, 24, 30, 30),
	}

	out, err := Cutout(img, r, 4, 1)
	if err != nil {
		t.Fatalf("Cutout failed: %v", err)
	}
	// Margin is clipped at the bottom-right image corner.
	if out.Width != 10 || out.Height != 10 {
		t.Errorf("cutout size = %dx%d, want 10x10", out.Width, out.Height)
	}
}
