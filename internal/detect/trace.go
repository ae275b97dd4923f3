package detect

import "fmt"

// maxTraceVertices bounds the boundary walk. A single connected raster
// closes long before this; running past it means the raster is
// malformed or disjoint.
const maxTraceVertices = 999

// walking directions for the perimeter trace.
var (
	dirRight = [2]int{1, 0}
	dirLeft  = [2]int{-1, 0}
	dirUp    = [2]int{0, -1}
	dirDown  = [2]int{0, 1}
)

// Trace extracts a closed polygon outline from a finished region.
//
// The region's member boxes are rasterized onto a local boolean grid
// sized to the bounding box plus a one-pixel border on all sides; the
// border guarantees the walk starts outside any filled pixel and that
// 8-neighbour checks never index out of bounds.
//
// # Algorithm
//
// The walk follows perimeter pixels: pixels that are filled but not
// fully interior (a pixel is interior only when all 8 of its neighbours
// are also filled).
//
//  1. Scan rightward along the first interior row until a filled pixel
//     is found; start there walking right.
//  2. While the next pixel in the current direction is a perimeter
//     pixel, step onto it.
//  3. When blocked, record the current pixel as a vertex and turn:
//     walking horizontally, go up if the up-neighbour is a perimeter
//     pixel, else down; walking vertically, go right if possible,
//     else left.
//  4. Stop when a newly recorded vertex equals the first recorded
//     vertex, closing the loop.
//
// The returned vertices are absolute image coordinates with the first
// point repeated at the end. If the walk records maxTraceVertices
// vertices without closing, Trace returns an error wrapping
// ErrTraceNotClosed; callers should skip that region's polygon and
// continue with the rest.
func Trace(r *Region) ([]Point, error) {
	bounds := r.Bounds
	w, h := bounds.Width(), bounds.Height()

	grid := make([][]bool, h+2)
	for i := range grid {
		grid[i] = make([]bool, w+2)
	}
	r.Window(grid, bounds.X1-1, bounds.Y1-1)

	perimeter := func(x, y int) bool {
		if !grid[y][x] {
			return false
		}
		// Filled pixels only occur at [1..w]×[1..h], so the
		// neighbourhood stays inside the bordered grid.
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if !grid[y+dy][x+dx] {
					return true
				}
			}
		}
		return false // fully interior
	}

	// The bounding box is tight, so the first interior row always
	// holds at least one filled pixel.
	x, y := -1, 1
	for sx := 1; sx <= w; sx++ {
		if grid[1][sx] {
			x = sx
			break
		}
	}
	if x < 0 {
		return nil, fmt.Errorf("region %d has an empty raster: %w", r.ID, ErrTraceNotClosed)
	}

	dir := dirRight
	var verts []Point
	for {
		nx, ny := x+dir[0], y+dir[1]
		if perimeter(nx, ny) {
			x, y = nx, ny
			continue
		}

		verts = append(verts, Point{X: x, Y: y})
		if len(verts) > 1 && verts[0] == verts[len(verts)-1] {
			break
		}
		if len(verts) >= maxTraceVertices {
			return nil, fmt.Errorf("region %d: %w", r.ID, ErrTraceNotClosed)
		}

		if dir[1] == 0 {
			if perimeter(x, y-1) {
				dir = dirUp
			} else {
				dir = dirDown
			}
		} else {
			if perimeter(x+1, y) {
				dir = dirRight
			} else {
				dir = dirLeft
			}
		}
	}

	// Translate out of the bordered local raster into absolute image
	// coordinates.
	for i := range verts {
		verts[i].X += bounds.X1 - 1
		verts[i].Y += bounds.Y1 - 1
	}
	return verts, nil
}
