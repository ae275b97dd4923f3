package detect

import "fmt"

// Counter answers axis-aligned rectangle population-count queries over
// a thresholded scalar field in O(1).
//
// Construction thresholds the field into a boolean mask
// (value >= threshold) and builds a 2D prefix-sum table sized
// (height+1) × (width+1), so that table[y][x] holds the number of
// mask-true pixels in [0,x) × [0,y). The extra row and column remove
// all boundary special-casing from queries.
//
// A Counter is immutable after construction and safe for concurrent
// readers.
type Counter struct {
	width  int
	height int
	table  [][]int
}

// NewCounter builds a Counter over field, a row-major scalar field
// indexed field[y][x]. Every pixel with value >= threshold counts as
// set. Rows must all have the same length.
func NewCounter(field [][]float64, threshold float64) *Counter {
	height := len(field)
	width := 0
	if height > 0 {
		width = len(field[0])
	}

	table := make([][]int, height+1)
	table[0] = make([]int, width+1)
	for y := 0; y < height; y++ {
		if len(field[y]) != width {
			panic(fmt.Sprintf("detect: ragged field: row %d has %d columns, want %d", y, len(field[y]), width))
		}
		row := make([]int, width+1)
		prev := table[y]
		for x := 0; x < width; x++ {
			v := 0
			if field[y][x] >= threshold {
				v = 1
			}
			row[x+1] = v + row[x] + prev[x+1] - prev[x]
		}
		table[y+1] = row
	}

	return &Counter{width: width, height: height, table: table}
}

// Width returns the field width in pixels.
func (c *Counter) Width() int { return c.width }

// Height returns the field height in pixels.
func (c *Counter) Height() int { return c.height }

// Count returns the number of above-threshold pixels in the half-open
// rectangle [x1,x2) × [y1,y2), by inclusion-exclusion on the four
// corners of the prefix table.
//
// Requires 0 <= x1 <= x2 <= Width and 0 <= y1 <= y2 <= Height; a query
// outside those bounds is a programming error and panics.
func (c *Counter) Count(x1, y1, x2, y2 int) int {
	if x1 < 0 || y1 < 0 || x2 > c.width || y2 > c.height || x1 > x2 || y1 > y2 {
		panic(fmt.Sprintf("detect: count range (%d,%d)-(%d,%d) invalid for %dx%d field",
			x1, y1, x2, y2, c.width, c.height))
	}
	return c.table[y2][x2] - c.table[y1][x2] - c.table[y2][x1] + c.table[y1][x1]
}
