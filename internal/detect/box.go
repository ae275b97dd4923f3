package detect

import "fmt"

// Box is an axis-aligned integer rectangle in pixel coordinates.
//
// The rectangle is half-open: it covers [X1,X2) × [Y1,Y2), so a box
// (0,0,10,10) spans pixels 0..9 on both axes. A valid Box always has
// X1 < X2 and Y1 < Y2.
type Box struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (exclusive)
	Y2 int `json:"y2"` // Bottom edge (exclusive)
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// NewBox constructs a Box and validates its geometry.
//
// A box with non-positive width or height is a programming error and
// panics; boxes are produced by the searcher from validated tile
// coordinates, never from user input.
func NewBox(x1, y1, x2, y2 int) Box {
	if x1 >= x2 || y1 >= y2 {
		panic(fmt.Sprintf("detect: invalid box (%d,%d)-(%d,%d): require x1 < x2 and y1 < y2", x1, y1, x2, y2))
	}
	return Box{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent in pixels.
func (b Box) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent in pixels.
func (b Box) Height() int { return b.Y2 - b.Y1 }

// Area returns the covered area in square pixels.
func (b Box) Area() int { return b.Width() * b.Height() }

// union returns the smallest box covering both b and o.
func (b Box) union(o Box) Box {
	return Box{
		X1: min(b.X1, o.X1),
		Y1: min(b.Y1, o.Y1),
		X2: max(b.X2, o.X2),
		Y2: max(b.Y2, o.Y2),
	}
}

// contains reports whether the point (x, y) lies within the box's
// closed bounds. Both edges are inclusive here: a corner resting on an
// edge still counts as contained, which is what lets edge-adjacent
// tiles merge at overlap factor 0.
func (b Box) contains(x, y int) bool {
	return b.X1 <= x && x <= b.X2 && b.Y1 <= y && y <= b.Y2
}

// Overlaps reports whether rectangles a and b overlap by at least the
// given fractional factor.
//
// The test is a corner-containment heuristic, not a true
// intersection-area test: with either rectangle playing the role of
// reference, some corner of the other must lie within it, and the
// intersection area divided by the reference rectangle's area must be
// >= factor. At factor 0 a shared edge or corner is enough.
//
// # Limitations
//
// Two rectangles crossing in a "plus" configuration overlap
// geometrically but have no corner of either inside the other, so this
// predicate reports false for them. Merge results depend on this exact
// behaviour; do not replace it with a full intersection test.
func Overlaps(a, b Box, factor float64) bool {
	return cornerOverlap(a, b, factor) || cornerOverlap(b, a, factor)
}

// cornerOverlap reports whether some corner of b lies within reference
// rectangle a and the intersection covers at least factor of a's area.
func cornerOverlap(a, b Box, factor float64) bool {
	corners := [4][2]int{
		{b.X1, b.Y1},
		{b.X2, b.Y1},
		{b.X1, b.Y2},
		{b.X2, b.Y2},
	}
	for _, c := range corners {
		if !a.contains(c[0], c[1]) {
			continue
		}
		iw := min(a.X2, b.X2) - max(a.X1, b.X1)
		ih := min(a.Y2, b.Y2) - max(a.Y1, b.Y1)
		if iw < 0 {
			iw = 0
		}
		if ih < 0 {
			ih = 0
		}
		if float64(iw*ih) >= factor*float64(a.Area()) {
			return true
		}
	}
	return false
}
