package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"github.com/radioastro/sourcefind/internal/detect"
	"github.com/radioastro/sourcefind/internal/pipeline"
)

// OverlayResult contains the annotated image.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Sources     int    `json:"sources"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`

	// Image is the decoded annotation, for callers that save to disk
	// instead of embedding the base64 form.
	Image *image.RGBA `json:"-"`
}

// Overlay draws every detected source onto a copy of img: the traced
// outline and ID label in a per-source color, and optionally the
// individual member boxes the source was merged from in a dimmed
// shade. Sources without a closed outline fall back to their bounding
// box.
func Overlay(img image.Image, res *pipeline.Result, showBoxes bool) (*OverlayResult, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), img, bounds.Min, draw.Src)

	labelColor := color.RGBA{255, 255, 255, 255}
	labelBg := color.RGBA{0, 0, 0, 180}

	palette := Palette(len(res.Sources))
	for i, src := range res.Sources {
		c := palette[i]

		if showBoxes && i < len(res.Regions) {
			dim := color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
			for _, b := range res.Regions[i].Boxes {
				drawRect(canvas, b, dim)
			}
		}

		if len(src.Polygon) > 1 {
			for j := 1; j < len(src.Polygon); j++ {
				drawSegment(canvas, src.Polygon[j-1], src.Polygon[j], c)
			}
		} else {
			drawRect(canvas, src.Bounds, c)
		}

		drawLabel(canvas, src.Bounds.X1+2, src.Bounds.Y1+2, strconv.Itoa(src.ID), labelColor, labelBg)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	return &OverlayResult{
		Width:       width,
		Height:      height,
		Sources:     len(res.Sources),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
		Image:       canvas,
	}, nil
}

// drawRect outlines the half-open box b. Pixels outside the canvas are
// skipped, so boxes touching the image edge draw their visible sides.
func drawRect(img *image.RGBA, b detect.Box, c color.RGBA) {
	for x := b.X1; x < b.X2; x++ {
		setClipped(img, x, b.Y1, c)
		setClipped(img, x, b.Y2-1, c)
	}
	for y := b.Y1; y < b.Y2; y++ {
		setClipped(img, b.X1, y, c)
		setClipped(img, b.X2-1, y, c)
	}
}

// drawSegment draws the axis-aligned line between two trace vertices.
func drawSegment(img *image.RGBA, a, b detect.Point, c color.RGBA) {
	x1, x2 := min(a.X, b.X), max(a.X, b.X)
	y1, y2 := min(a.Y, b.Y), max(a.Y, b.Y)
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			setClipped(img, x, y, c)
		}
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}
