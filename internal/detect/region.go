package detect

// Region is an accumulating group of overlapping candidate boxes
// representing one merged source.
//
// A Region is created with a single seed box and only ever grows, by
// Append or Union; it is never split. Bounds is kept exactly equal to
// the min/max extent of the member boxes at all times. The merge engine
// is the sole owner of live Regions: once a Region has been unioned
// into another it is removed from the spatial tree and must not be
// referenced again.
//
// The ID is unique within one engine run and is used only for labelling
// output; no merge decision depends on it.
type Region struct {
	ID     int   `json:"id"`
	Boxes  []Box `json:"boxes"`
	Bounds Box   `json:"bounds"`
}

// newRegion creates a singleton Region from a seed box.
func newRegion(id int, seed Box) *Region {
	return &Region{
		ID:     id,
		Boxes:  []Box{seed},
		Bounds: seed,
	}
}

// Append adds a box to the region, widening the cached bounding box.
func (r *Region) Append(b Box) {
	r.Boxes = append(r.Boxes, b)
	r.Bounds = r.Bounds.union(b)
}

// Union absorbs all of o's boxes into r. The absorbed region is spent
// afterwards and must be discarded by the caller.
func (r *Region) Union(o *Region) {
	for _, b := range o.Boxes {
		r.Append(b)
	}
}

// Overlaps reports whether the query box overlaps any member box by at
// least factor. The region's bounding box serves as a cheap reject: if
// the query does not touch it at factor 0 no member can match.
func (r *Region) Overlaps(b Box, factor float64) bool {
	if !Overlaps(r.Bounds, b, 0) {
		return false
	}
	for _, m := range r.Boxes {
		if Overlaps(m, b, factor) {
			return true
		}
	}
	return false
}

// Center returns the center of the region's bounding box.
func (r *Region) Center() Point {
	return Point{
		X: (r.Bounds.X1 + r.Bounds.X2) / 2,
		Y: (r.Bounds.Y1 + r.Bounds.Y2) / 2,
	}
}

// Window rasterizes the region's member boxes onto mask, offset so that
// mask position (0,0) corresponds to image position (ox, oy). Pixels
// outside the mask are clipped. The mask is indexed mask[y][x].
func (r *Region) Window(mask [][]bool, ox, oy int) {
	if len(mask) == 0 {
		return
	}
	h := len(mask)
	w := len(mask[0])
	for _, b := range r.Boxes {
		y1 := max(b.Y1-oy, 0)
		y2 := min(b.Y2-oy, h)
		x1 := max(b.X1-ox, 0)
		x2 := min(b.X2-ox, w)
		for y := y1; y < y2; y++ {
			row := mask[y]
			for x := x1; x < x2; x++ {
				row[x] = true
			}
		}
	}
}
