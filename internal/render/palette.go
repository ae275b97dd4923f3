package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n visually distinct, fully saturated colors with
// hues evenly spaced around the color wheel. Useful amounts of
// distinctness run out somewhere past a few dozen sources, but the
// colors stay deterministic for any n.
func Palette(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		c := colorful.Hsv(float64(i)*360/float64(n), 0.9, 1)
		r, g, b := c.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}
