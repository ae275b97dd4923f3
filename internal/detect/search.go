package detect

import "fmt"

// Search scans a regular non-overlapping grid×grid tiling of the
// counter's field, starting at origin offset (ox, oy), and returns
// every tile whose above-threshold pixel occupancy is at least one
// half. Tiles that would extend past the field edge are not tested.
//
// Tiles are visited column-major: x advances in steps of grid from ox,
// and for each x, y advances from oy, so output order is fully
// determined by (grid, ox, oy). Search reads only immutable state and
// may run concurrently with other Search calls on the same Counter.
//
// grid must be >= 1 and the offsets must satisfy 0 <= ox,oy < grid;
// violations are programming errors and panic.
func Search(c *Counter, grid, ox, oy int) []Box {
	if grid < 1 {
		panic(fmt.Sprintf("detect: grid size %d < 1", grid))
	}
	if ox < 0 || ox >= grid || oy < 0 || oy >= grid {
		panic(fmt.Sprintf("detect: offset (%d,%d) outside [0,%d)", ox, oy, grid))
	}

	// count/(grid*grid) >= 0.5, in exact integer arithmetic.
	need := grid * grid
	var boxes []Box
	for x := ox; x+grid <= c.width; x += grid {
		for y := oy; y+grid <= c.height; y += grid {
			if 2*c.Count(x, y, x+grid, y+grid) >= need {
				boxes = append(boxes, Box{X1: x, Y1: y, X2: x + grid, Y2: y + grid})
			}
		}
	}
	return boxes
}

// Offsets returns the tiling origins to search for one grid size.
//
// For overlap count k, the base offsets are i*(grid/k) for i in 0..k-1
// (integer division). In simplified mode each base offset is applied
// identically to both axes, producing k origins. In exhaustive mode the
// full k×k Cartesian product is produced; this yields materially more
// candidate boxes around the same region and is intended only for small
// grid sizes where precise centering matters.
//
// overlap must satisfy 1 <= overlap <= grid.
func Offsets(grid, overlap int, exhaustive bool) [][2]int {
	if overlap < 1 || overlap > grid {
		panic(fmt.Sprintf("detect: overlap count %d outside [1,%d]", overlap, grid))
	}

	step := grid / overlap
	base := make([]int, overlap)
	for i := range base {
		base[i] = i * step
	}

	if !exhaustive {
		offsets := make([][2]int, len(base))
		for i, o := range base {
			offsets[i] = [2]int{o, o}
		}
		return offsets
	}

	offsets := make([][2]int, 0, overlap*overlap)
	for _, ox := range base {
		for _, oy := range base {
			offsets = append(offsets, [2]int{ox, oy})
		}
	}
	return offsets
}
