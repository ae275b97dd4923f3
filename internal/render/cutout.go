package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/disintegration/imaging"

	"github.com/radioastro/sourcefind/internal/detect"
)

// CutoutResult contains one source extracted from its image.
type CutoutResult struct {
	RegionID    int    `json:"region_id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	Image *image.NRGBA `json:"-"`
}

// Cutout extracts region r from img. Pixels outside the region's
// footprint are blanked, the footprint itself is dilated margin pixels
// so the source keeps a thin skirt of surrounding sky, and the result
// is cropped to the dilated bounding box. A scale > 0 and != 1 resizes
// the crop with Lanczos resampling.
func Cutout(img image.Image, r *detect.Region, margin int, scale float64) (*CutoutResult, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if r.Bounds.X1 >= width || r.Bounds.Y1 >= height || r.Bounds.X2 <= 0 || r.Bounds.Y2 <= 0 {
		return nil, fmt.Errorf("region %d bounds (%d,%d)-(%d,%d) outside image %dx%d",
			r.ID, r.Bounds.X1, r.Bounds.Y1, r.Bounds.X2, r.Bounds.Y2, width, height)
	}
	if margin < 0 {
		margin = 0
	}

	mask := make([][]bool, height)
	for i := range mask {
		mask[i] = make([]bool, width)
	}
	r.Window(mask, 0, 0)
	for i := 0; i < margin; i++ {
		dilate(mask)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)
	blank := color.RGBA{0, 0, 0, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y][x] {
				canvas.Set(x, y, blank)
			}
		}
	}

	rect := image.Rect(
		max(r.Bounds.X1-margin, 0),
		max(r.Bounds.Y1-margin, 0),
		min(r.Bounds.X2+margin, width),
		min(r.Bounds.Y2+margin, height),
	)
	cropped := imaging.Crop(canvas, rect)

	if scale > 0 && scale != 1 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cropped); err != nil {
		return nil, fmt.Errorf("failed to encode cutout: %w", err)
	}

	return &CutoutResult{
		RegionID:    r.ID,
		Width:       cropped.Bounds().Dx(),
		Height:      cropped.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Image:       cropped,
	}, nil
}

// dilate grows the mask by one pixel in the four cardinal directions.
func dilate(mask [][]bool) {
	height := len(mask)
	if height == 0 {
		return
	}
	width := len(mask[0])

	grown := make([][]bool, height)
	for y := range grown {
		grown[y] = make([]bool, width)
		copy(grown[y], mask[y])
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y][x] {
				continue
			}
			if x > 0 {
				grown[y][x-1] = true
			}
			if x < width-1 {
				grown[y][x+1] = true
			}
			if y > 0 {
				grown[y-1][x] = true
			}
			if y < height-1 {
				grown[y+1][x] = true
			}
		}
	}
	for y := range mask {
		copy(mask[y], grown[y])
	}
}
